package repository

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (s *Store) GetWorkingHours(ctx context.Context, barberID uint, date string) (*models.WorkingHours, error) {
	var wh models.WorkingHours
	if err := s.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		First(&wh).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &wh, nil
}

func (s *Store) ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	var list []models.WorkingHours
	if err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) GetWorkingHoursByID(ctx context.Context, id uint) (*models.WorkingHours, error) {
	var wh models.WorkingHours
	if err := s.db.WithContext(ctx).First(&wh, id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &wh, nil
}

func (s *Store) CreateWorkingHours(ctx context.Context, wh *models.WorkingHours) error {
	return translate(s.db.WithContext(ctx).Create(wh).Error, booking.ErrAlreadyExists)
}

func (s *Store) UpdateWorkingHours(ctx context.Context, wh *models.WorkingHours) error {
	res := s.db.WithContext(ctx).
		Model(wh).
		Select("*").
		Omit("created_at").
		Updates(wh)
	return mustAffect(res, booking.ErrAlreadyExists)
}

func (s *Store) DeleteWorkingHours(ctx context.Context, id uint) error {
	return mustAffect(s.db.WithContext(ctx).Delete(&models.WorkingHours{}, id), nil)
}

func (s *Store) DeleteAllWorkingHours(ctx context.Context, barberID uint) error {
	return s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Delete(&models.WorkingHours{}).Error
}

func (s *Store) CountWorkingHours(ctx context.Context, barberID uint, fromDate string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.WorkingHours{}).
		Where("barber_id = ? AND date >= ?", barberID, fromDate).
		Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Blocked slots
// --------------------------------------------------

func (s *Store) ListBlockedSlots(ctx context.Context, barberID uint, date string) ([]models.BlockedSlot, error) {
	var list []models.BlockedSlot
	if err := s.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) ListBlockedSlotsForBarber(ctx context.Context, barberID uint) ([]models.BlockedSlot, error) {
	var list []models.BlockedSlot
	if err := s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("date ASC, start_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) GetBlockedSlot(ctx context.Context, id uint) (*models.BlockedSlot, error) {
	var bs models.BlockedSlot
	if err := s.db.WithContext(ctx).First(&bs, id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &bs, nil
}

func (s *Store) ExistsBlockedSlot(ctx context.Context, barberID uint, date, start, end string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).
		Model(&models.BlockedSlot{}).
		Where("barber_id = ? AND date = ? AND start_time = ? AND end_time = ?", barberID, date, start, end).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) CreateBlockedSlot(ctx context.Context, bs *models.BlockedSlot) error {
	return translate(s.db.WithContext(ctx).Create(bs).Error, booking.ErrAlreadyExists)
}

func (s *Store) UpdateBlockedSlot(ctx context.Context, bs *models.BlockedSlot) error {
	res := s.db.WithContext(ctx).
		Model(bs).
		Select("*").
		Omit("created_at").
		Updates(bs)
	return mustAffect(res, booking.ErrAlreadyExists)
}

func (s *Store) DeleteBlockedSlot(ctx context.Context, id uint) error {
	return mustAffect(s.db.WithContext(ctx).Delete(&models.BlockedSlot{}, id), nil)
}

func (s *Store) DeleteAllBlockedSlots(ctx context.Context, barberID uint) error {
	return s.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Delete(&models.BlockedSlot{}).Error
}

func (s *Store) CountBlockedSlots(ctx context.Context, barberID uint, fromDate string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.BlockedSlot{}).
		Where("barber_id = ? AND date >= ?", barberID, fromDate).
		Count(&n).Error
	return n, err
}
