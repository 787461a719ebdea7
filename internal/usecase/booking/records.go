package booking

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ======================================================
// GET
// ======================================================

// GetAppointment loads one appointment. A barberID of zero skips the
// ownership check; another barber's record reads as not found.
type GetAppointment struct {
	store domain.RecordRepository
}

func NewGetAppointment(store domain.RecordRepository) *GetAppointment {
	return &GetAppointment{store: store}
}

func (uc *GetAppointment) Execute(ctx context.Context, barberID, id uint) (*models.Appointment, error) {
	ap, err := uc.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if barberID != 0 && ap.BarberID != barberID {
		return nil, domain.ErrNotFound
	}
	return ap, nil
}

type GetWalkIn struct {
	store domain.RecordRepository
}

func NewGetWalkIn(store domain.RecordRepository) *GetWalkIn {
	return &GetWalkIn{store: store}
}

func (uc *GetWalkIn) Execute(ctx context.Context, barberID, id uint) (*models.WalkIn, error) {
	w, err := uc.store.GetWalkIn(ctx, id)
	if err != nil {
		return nil, err
	}
	if barberID != 0 && w.BarberID != barberID {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// ======================================================
// LIST
// ======================================================

type ListWalkIns struct {
	repo domain.AvailabilityReader
}

func NewListWalkIns(repo domain.AvailabilityReader) *ListWalkIns {
	return &ListWalkIns{repo: repo}
}

// Execute lists one barber's walk-ins for a date in arrival order,
// optionally narrowed to the given statuses.
func (uc *ListWalkIns) Execute(
	ctx context.Context,
	barberID uint,
	date string,
	statuses ...domain.Status,
) ([]models.WalkIn, error) {

	if barberID == 0 {
		return nil, fmt.Errorf("%w: barber_id is required", domain.ErrInvalidFormat)
	}
	if !hhmm.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q, want YYYY-MM-DD", domain.ErrInvalidFormat, date)
	}

	walkIns, err := uc.repo.ListWalkIns(ctx, barberID, date, statuses...)
	if err != nil {
		return nil, fmt.Errorf("list walk-ins: %w", err)
	}
	if walkIns == nil {
		walkIns = []models.WalkIn{}
	}
	return walkIns, nil
}
