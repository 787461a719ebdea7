package booking

import (
	"context"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/queue"
)

// StatusChanger is the part of queue.Manager that applies manual status
// changes.
type StatusChanger interface {
	SetAppointmentStatus(ctx context.Context, appointmentID uint, to domain.Status) (*models.Appointment, error)
	SetWalkInStatus(ctx context.Context, walkInID uint, to domain.Status) (*models.WalkIn, error)
}

var _ StatusChanger = (*queue.Manager)(nil)

// ======================================================
// USE CASE
// ======================================================

// UpdateStatus applies a barber's decision (approve, reject, no-show) to an
// appointment or walk-in. Ownership is checked before the change.
type UpdateStatus struct {
	store  domain.RecordRepository
	status StatusChanger
}

func NewUpdateStatus(store domain.RecordRepository, status StatusChanger) *UpdateStatus {
	return &UpdateStatus{store: store, status: status}
}

func (uc *UpdateStatus) Appointment(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	if !domain.ManualTarget(to) {
		return nil, domain.ErrInvalidStateTransition
	}

	ap, err := uc.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if barberID != 0 && ap.BarberID != barberID {
		return nil, domain.ErrNotFound
	}

	return uc.status.SetAppointmentStatus(ctx, appointmentID, to)
}

func (uc *UpdateStatus) WalkIn(
	ctx context.Context,
	barberID uint,
	walkInID uint,
	to domain.Status,
) (*models.WalkIn, error) {

	if !domain.ManualTarget(to) {
		return nil, domain.ErrInvalidStateTransition
	}

	w, err := uc.store.GetWalkIn(ctx, walkInID)
	if err != nil {
		return nil, err
	}
	if barberID != 0 && w.BarberID != barberID {
		return nil, domain.ErrNotFound
	}

	return uc.status.SetWalkInStatus(ctx, walkInID, to)
}
