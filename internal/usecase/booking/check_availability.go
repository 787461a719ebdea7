package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/availability"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CheckAvailabilityInput struct {
	BarberID      uint
	Date          string
	RequestedTime string
	Service       string
}

// CheckAvailabilityOutput carries the confirmed slot when Available, the
// suggested one otherwise.
type CheckAvailabilityOutput struct {
	Available     bool            `json:"is_available"`
	Slot          domain.TimeSlot `json:"slot"`
	Date          string          `json:"date"`
	BarberID      uint            `json:"barber_id"`
	Service       string          `json:"service"`
	EstimatedTime int             `json:"estimated_time"`
}

// ======================================================
// USE CASE
// ======================================================

type CheckAvailability struct {
	repo     domain.AvailabilityReader
	resolver *availability.Resolver
	cfg      config.BookingConfig
}

func NewCheckAvailability(
	repo domain.AvailabilityReader,
	resolver *availability.Resolver,
	cfg config.BookingConfig,
) *CheckAvailability {
	return &CheckAvailability{
		repo:     repo,
		resolver: resolver,
		cfg:      cfg,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (*CheckAvailabilityOutput, error) {

	if err := validDateTime(in.Date, in.RequestedTime); err != nil {
		return nil, err
	}
	if _, err := openAt(ctx, uc.repo, in.BarberID, in.Date, in.RequestedTime); err != nil {
		return nil, err
	}

	duration := uc.cfg.ServiceDuration(in.Service)
	end, err := hhmm.Add(in.RequestedTime, duration)
	if err != nil {
		return nil, err
	}

	out := &CheckAvailabilityOutput{
		Date:          in.Date,
		BarberID:      in.BarberID,
		Service:       in.Service,
		EstimatedTime: duration,
	}

	ok, err := uc.resolver.IsAvailable(ctx, in.BarberID, in.Date, in.RequestedTime, end)
	if err != nil {
		return nil, err
	}
	if ok {
		out.Available = true
		out.Slot = domain.TimeSlot{Start: in.RequestedTime, End: end}
		return out, nil
	}

	next, err := uc.resolver.NextAvailable(ctx, in.BarberID, in.Date, in.RequestedTime, duration)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, domain.ErrNoSlotAvailable
	}
	out.Slot = *next
	return out, nil
}
