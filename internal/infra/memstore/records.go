package memstore

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	defer s.lock()()
	ap, ok := s.db.state.appointments[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &ap, nil
}

func (s *Store) ListAppointments(_ context.Context, f booking.AppointmentFilter) ([]models.Appointment, error) {
	defer s.lock()()
	var out []models.Appointment
	for _, id := range sortedKeys(s.db.state.appointments) {
		ap := s.db.state.appointments[id]
		if f.BarberID != 0 && ap.BarberID != f.BarberID {
			continue
		}
		if f.Date != "" && ap.Date != f.Date {
			continue
		}
		if !hasStatus(ap.Status, f.Statuses) {
			continue
		}
		if !f.CreatedBefore.IsZero() && !ap.CreatedAt.Before(f.CreatedBefore) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	defer s.lock()()
	for _, other := range s.db.state.appointments {
		if other.CustomerEmail == ap.CustomerEmail &&
			other.Date == ap.Date &&
			other.RequestedTime == ap.RequestedTime {
			return booking.ErrDuplicateAppointment
		}
	}
	ap.ID = s.db.state.id()
	s.stamp(&ap.CreatedAt, &ap.UpdatedAt)
	s.db.state.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	defer s.lock()()
	if _, ok := s.db.state.appointments[ap.ID]; !ok {
		return booking.ErrNotFound
	}
	s.stamp(nil, &ap.UpdatedAt)
	s.db.state.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id uint) error {
	defer s.lock()()
	if _, ok := s.db.state.appointments[id]; !ok {
		return booking.ErrNotFound
	}
	delete(s.db.state.appointments, id)
	return nil
}

// --------------------------------------------------
// Walk-ins
// --------------------------------------------------

func (s *Store) GetWalkIn(_ context.Context, id uint) (*models.WalkIn, error) {
	defer s.lock()()
	w, ok := s.db.state.walkIns[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &w, nil
}

func (s *Store) ListWalkIns(_ context.Context, barberID uint, date string, statuses ...booking.Status) ([]models.WalkIn, error) {
	defer s.lock()()
	var out []models.WalkIn
	for _, id := range sortedKeys(s.db.state.walkIns) {
		w := s.db.state.walkIns[id]
		if w.BarberID == barberID && w.Date == date && hasStatus(w.Status, statuses) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *Store) CreateWalkIn(_ context.Context, w *models.WalkIn) error {
	defer s.lock()()
	w.ID = s.db.state.id()
	s.stamp(&w.CreatedAt, &w.UpdatedAt)
	s.db.state.walkIns[w.ID] = *w
	return nil
}

func (s *Store) UpdateWalkIn(_ context.Context, w *models.WalkIn) error {
	defer s.lock()()
	if _, ok := s.db.state.walkIns[w.ID]; !ok {
		return booking.ErrNotFound
	}
	s.stamp(nil, &w.UpdatedAt)
	s.db.state.walkIns[w.ID] = *w
	return nil
}
