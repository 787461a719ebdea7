package booking

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-queue/internal/availability"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID   uint
	CustomerID *uint

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Date          string
	RequestedTime string
	Service       string
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	store    domain.Store
	resolver *availability.Resolver
	cfg      config.BookingConfig
	log      zerolog.Logger
}

func NewCreateAppointment(
	store domain.Store,
	resolver *availability.Resolver,
	cfg config.BookingConfig,
	log zerolog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		store:    store,
		resolver: resolver,
		cfg:      cfg,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books a pending appointment. When the requested time is taken it
// fails with a *SlotUnavailableError carrying the next bookable slot, or
// with ErrNoSlotAvailable when the rest of the day is full.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input + barber
	// --------------------------------------------------
	if err := validDateTime(in.Date, in.RequestedTime); err != nil {
		return nil, err
	}

	isBarber, err := uc.store.IsBarber(ctx, in.BarberID)
	if err != nil {
		return nil, fmt.Errorf("check barber: %w", err)
	}
	if !isBarber {
		return nil, domain.ErrBarberNotFound
	}

	duration := uc.cfg.ServiceDuration(in.Service)
	if !uc.cfg.KnownService(in.Service) {
		uc.log.Debug().Str("service", in.Service).Int("minutes", duration).Msg("unknown service, using default duration")
	}
	end, err := hhmm.Add(in.RequestedTime, duration)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Check + create under the queue lock
	// --------------------------------------------------
	var ap *models.Appointment
	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.LockQueue(ctx, in.BarberID, in.Date); err != nil {
			return fmt.Errorf("lock queue: %w", err)
		}
		if _, err := openAt(ctx, tx, in.BarberID, in.Date, in.RequestedTime); err != nil {
			return err
		}

		resolver := uc.resolver.On(tx)
		ok, err := resolver.IsAvailable(ctx, in.BarberID, in.Date, in.RequestedTime, end)
		if err != nil {
			return err
		}
		if !ok {
			next, err := resolver.NextAvailable(ctx, in.BarberID, in.Date, in.RequestedTime, duration)
			if err != nil {
				return err
			}
			if next == nil {
				return domain.ErrNoSlotAvailable
			}
			return &domain.SlotUnavailableError{Suggested: *next}
		}

		ap = &models.Appointment{
			CustomerID:    in.CustomerID,
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
			BarberID:      in.BarberID,
			Date:          in.Date,
			RequestedTime: in.RequestedTime,
			StartTime:     in.RequestedTime,
			EndTime:       end,
			EstimatedTime: duration,
			Service:       in.Service,
			Status:        string(domain.StatusPendingApproval),
			Notes:         in.Notes,
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Uint("appointment_id", ap.ID).
		Uint("barber_id", ap.BarberID).
		Str("date", ap.Date).
		Str("start", ap.StartTime).
		Msg("appointment requested")

	return ap, nil
}
