package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (s *Store) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := s.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &ap, nil
}

func (s *Store) ListAppointments(
	ctx context.Context,
	f booking.AppointmentFilter,
) ([]models.Appointment, error) {

	q := s.db.WithContext(ctx).Model(&models.Appointment{})
	if f.BarberID != 0 {
		q = q.Where("barber_id = ?", f.BarberID)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", booking.StatusStrings(f.Statuses))
	}
	if !f.CreatedBefore.IsZero() {
		q = q.Where("created_at < ?", f.CreatedBefore)
	}

	var apps []models.Appointment
	if err := q.Order("id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *Store) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	return translate(err, booking.ErrDuplicateAppointment)
}

func (s *Store) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	res := s.db.WithContext(ctx).
		Model(ap).
		Select("*").
		Omit("created_at", clause.Associations).
		Updates(ap)
	return mustAffect(res, booking.ErrDuplicateAppointment)
}

func (s *Store) DeleteAppointment(ctx context.Context, id uint) error {
	return mustAffect(s.db.WithContext(ctx).Delete(&models.Appointment{}, id), nil)
}

// --------------------------------------------------
// Walk-in
// --------------------------------------------------

func (s *Store) GetWalkIn(ctx context.Context, id uint) (*models.WalkIn, error) {
	var w models.WalkIn
	if err := s.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &w, nil
}

func (s *Store) ListWalkIns(
	ctx context.Context,
	barberID uint,
	date string,
	statuses ...booking.Status,
) ([]models.WalkIn, error) {

	q := s.db.WithContext(ctx).Where("barber_id = ? AND date = ?", barberID, date)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", booking.StatusStrings(statuses))
	}

	var walkIns []models.WalkIn
	if err := q.Order("id ASC").Find(&walkIns).Error; err != nil {
		return nil, err
	}
	return walkIns, nil
}

func (s *Store) CreateWalkIn(ctx context.Context, w *models.WalkIn) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(w).Error, nil)
}

func (s *Store) UpdateWalkIn(ctx context.Context, w *models.WalkIn) error {
	res := s.db.WithContext(ctx).
		Model(w).
		Select("*").
		Omit("created_at", clause.Associations).
		Updates(w)
	return mustAffect(res, nil)
}
