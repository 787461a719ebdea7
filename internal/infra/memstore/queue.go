package memstore

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// LockQueue is a no-op: transactions already hold the store-wide lock.
func (s *Store) LockQueue(ctx context.Context, _ uint, _ string) error {
	return ctx.Err()
}

func (s *Store) FindEntryBySource(_ context.Context, src booking.Source) (*models.QueueEntry, error) {
	defer s.lock()()
	for _, e := range s.db.state.entries {
		if e.SourceType == string(src.Type()) && e.SourceID == src.ID() {
			return &e, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (s *Store) GetEntry(_ context.Context, id uint) (*models.QueueEntry, error) {
	defer s.lock()()
	e, ok := s.db.state.entries[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &e, nil
}

func (s *Store) MaxPosition(_ context.Context, barberID uint, date string) (int, error) {
	defer s.lock()()
	highest := 0
	for _, e := range s.db.state.entries {
		if e.BarberID == barberID && e.Date == date && e.Position > highest {
			highest = e.Position
		}
	}
	return highest, nil
}

func (s *Store) ListEntries(_ context.Context, barberID uint, date string, statuses ...booking.Status) ([]models.QueueEntry, error) {
	defer s.lock()()
	var out []models.QueueEntry
	for _, e := range s.db.state.entries {
		if e.BarberID == barberID && e.Date == date && hasStatus(e.Status, statuses) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *Store) CreateEntry(_ context.Context, e *models.QueueEntry) error {
	defer s.lock()()
	for _, other := range s.db.state.entries {
		if other.TokenNumber == e.TokenNumber {
			return booking.ErrDuplicateToken
		}
		if other.SourceType == e.SourceType && other.SourceID == e.SourceID {
			return booking.ErrAlreadyExists
		}
		if e.Status == string(booking.StatusOngoing) &&
			other.Status == string(booking.StatusOngoing) &&
			other.BarberID == e.BarberID && other.Date == e.Date {
			return booking.ErrAlreadyServing
		}
	}
	e.ID = s.db.state.id()
	s.stamp(&e.CreatedAt, &e.UpdatedAt)
	s.db.state.entries[e.ID] = *e
	return nil
}

func (s *Store) UpdateEntry(_ context.Context, e *models.QueueEntry) error {
	defer s.lock()()
	if _, ok := s.db.state.entries[e.ID]; !ok {
		return booking.ErrNotFound
	}
	if e.Status == string(booking.StatusOngoing) {
		for _, other := range s.db.state.entries {
			if other.ID != e.ID &&
				other.Status == string(booking.StatusOngoing) &&
				other.BarberID == e.BarberID && other.Date == e.Date {
				return booking.ErrAlreadyServing
			}
		}
	}
	s.stamp(nil, &e.UpdatedAt)
	s.db.state.entries[e.ID] = *e
	return nil
}

func (s *Store) ListQueueKeys(_ context.Context, date string) ([]booking.QueueKey, error) {
	defer s.lock()()
	seen := map[uint]bool{}
	var out []booking.QueueKey
	for _, id := range sortedKeys(s.db.state.entries) {
		e := s.db.state.entries[id]
		if e.Date != date || seen[e.BarberID] {
			continue
		}
		seen[e.BarberID] = true
		out = append(out, booking.QueueKey{BarberID: e.BarberID, Date: date})
	}
	return out, nil
}
