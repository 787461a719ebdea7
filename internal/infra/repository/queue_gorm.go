package repository

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// OneOngoingIndex keeps at most one ongoing entry per barber and day.
const OneOngoingIndex = "idx_queue_one_ongoing"

// LockQueue takes a transaction-scoped advisory lock. Outside a transaction
// the lock is released as soon as the statement finishes.
func (s *Store) LockQueue(ctx context.Context, barberID uint, date string) error {
	return s.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", queueLockKey(barberID, date)).
		Error
}

func (s *Store) FindEntryBySource(ctx context.Context, src booking.Source) (*models.QueueEntry, error) {
	var e models.QueueEntry
	if err := s.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", string(src.Type()), src.ID()).
		First(&e).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &e, nil
}

func (s *Store) GetEntry(ctx context.Context, id uint) (*models.QueueEntry, error) {
	var e models.QueueEntry
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &e, nil
}

func (s *Store) MaxPosition(ctx context.Context, barberID uint, date string) (int, error) {
	var highest int
	if err := s.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Select("COALESCE(MAX(position), 0)").
		Where("barber_id = ? AND date = ?", barberID, date).
		Scan(&highest).Error; err != nil {
		return 0, err
	}
	return highest, nil
}

func (s *Store) ListEntries(
	ctx context.Context,
	barberID uint,
	date string,
	statuses ...booking.Status,
) ([]models.QueueEntry, error) {

	q := s.db.WithContext(ctx).Where("barber_id = ? AND date = ?", barberID, date)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", booking.StatusStrings(statuses))
	}

	var entries []models.QueueEntry
	if err := q.Order("position ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) CreateEntry(ctx context.Context, e *models.QueueEntry) error {
	return translate(s.db.WithContext(ctx).Create(e).Error, booking.ErrAlreadyExists)
}

func (s *Store) UpdateEntry(ctx context.Context, e *models.QueueEntry) error {
	res := s.db.WithContext(ctx).
		Model(e).
		Select("*").
		Omit("created_at").
		Updates(e)
	return mustAffect(res, booking.ErrAlreadyExists)
}

func (s *Store) ListQueueKeys(ctx context.Context, date string) ([]booking.QueueKey, error) {
	var keys []booking.QueueKey
	if err := s.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Distinct("barber_id", "date").
		Where("date = ?", date).
		Order("barber_id ASC").
		Scan(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}
