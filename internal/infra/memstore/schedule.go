package memstore

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (s *Store) GetWorkingHours(_ context.Context, barberID uint, date string) (*models.WorkingHours, error) {
	defer s.lock()()
	for _, wh := range s.db.state.workingHours {
		if wh.BarberID == barberID && wh.Date == date {
			return &wh, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (s *Store) ListWorkingHours(_ context.Context, barberID uint) ([]models.WorkingHours, error) {
	defer s.lock()()
	var out []models.WorkingHours
	for _, wh := range s.db.state.workingHours {
		if wh.BarberID == barberID {
			out = append(out, wh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Store) GetWorkingHoursByID(_ context.Context, id uint) (*models.WorkingHours, error) {
	defer s.lock()()
	wh, ok := s.db.state.workingHours[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &wh, nil
}

func (s *Store) CreateWorkingHours(_ context.Context, wh *models.WorkingHours) error {
	defer s.lock()()
	for _, other := range s.db.state.workingHours {
		if other.BarberID == wh.BarberID && other.Date == wh.Date {
			return booking.ErrAlreadyExists
		}
	}
	wh.ID = s.db.state.id()
	s.stamp(&wh.CreatedAt, &wh.UpdatedAt)
	s.db.state.workingHours[wh.ID] = *wh
	return nil
}

func (s *Store) UpdateWorkingHours(_ context.Context, wh *models.WorkingHours) error {
	defer s.lock()()
	if _, ok := s.db.state.workingHours[wh.ID]; !ok {
		return booking.ErrNotFound
	}
	for _, other := range s.db.state.workingHours {
		if other.ID != wh.ID && other.BarberID == wh.BarberID && other.Date == wh.Date {
			return booking.ErrAlreadyExists
		}
	}
	s.stamp(nil, &wh.UpdatedAt)
	s.db.state.workingHours[wh.ID] = *wh
	return nil
}

func (s *Store) DeleteWorkingHours(_ context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.db.state.workingHours[id]; !ok {
		return booking.ErrNotFound
	}
	delete(s.db.state.workingHours, id)
	return nil
}

func (s *Store) DeleteAllWorkingHours(_ context.Context, barberID uint) error {
	defer s.lock()()
	for id, wh := range s.db.state.workingHours {
		if wh.BarberID == barberID {
			delete(s.db.state.workingHours, id)
		}
	}
	return nil
}

func (s *Store) CountWorkingHours(_ context.Context, barberID uint, fromDate string) (int64, error) {
	defer s.lock()()
	var n int64
	for _, wh := range s.db.state.workingHours {
		if wh.BarberID == barberID && wh.Date >= fromDate {
			n++
		}
	}
	return n, nil
}

// --------------------------------------------------
// Blocked slots
// --------------------------------------------------

func (s *Store) ListBlockedSlots(_ context.Context, barberID uint, date string) ([]models.BlockedSlot, error) {
	defer s.lock()()
	var out []models.BlockedSlot
	for _, id := range sortedKeys(s.db.state.blocked) {
		bs := s.db.state.blocked[id]
		if bs.BarberID == barberID && bs.Date == date {
			out = append(out, bs)
		}
	}
	return out, nil
}

func (s *Store) ListBlockedSlotsForBarber(_ context.Context, barberID uint) ([]models.BlockedSlot, error) {
	defer s.lock()()
	var out []models.BlockedSlot
	for _, bs := range s.db.state.blocked {
		if bs.BarberID == barberID {
			out = append(out, bs)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (s *Store) GetBlockedSlot(_ context.Context, id uint) (*models.BlockedSlot, error) {
	defer s.lock()()
	bs, ok := s.db.state.blocked[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &bs, nil
}

func (s *Store) ExistsBlockedSlot(_ context.Context, barberID uint, date, start, end string) (bool, error) {
	defer s.lock()()
	for _, bs := range s.db.state.blocked {
		if bs.BarberID == barberID && bs.Date == date && bs.StartTime == start && bs.EndTime == end {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateBlockedSlot(_ context.Context, bs *models.BlockedSlot) error {
	defer s.lock()()
	bs.ID = s.db.state.id()
	s.stamp(&bs.CreatedAt, &bs.UpdatedAt)
	s.db.state.blocked[bs.ID] = *bs
	return nil
}

func (s *Store) UpdateBlockedSlot(_ context.Context, bs *models.BlockedSlot) error {
	defer s.lock()()
	if _, ok := s.db.state.blocked[bs.ID]; !ok {
		return booking.ErrNotFound
	}
	s.stamp(nil, &bs.UpdatedAt)
	s.db.state.blocked[bs.ID] = *bs
	return nil
}

func (s *Store) DeleteBlockedSlot(_ context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.db.state.blocked[id]; !ok {
		return booking.ErrNotFound
	}
	delete(s.db.state.blocked, id)
	return nil
}

func (s *Store) DeleteAllBlockedSlots(_ context.Context, barberID uint) error {
	defer s.lock()()
	for id, bs := range s.db.state.blocked {
		if bs.BarberID == barberID {
			delete(s.db.state.blocked, id)
		}
	}
	return nil
}

func (s *Store) CountBlockedSlots(_ context.Context, barberID uint, fromDate string) (int64, error) {
	defer s.lock()()
	var n int64
	for _, bs := range s.db.state.blocked {
		if bs.BarberID == barberID && bs.Date >= fromDate {
			n++
		}
	}
	return n, nil
}
