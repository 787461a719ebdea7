package booking

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-queue/internal/availability"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/queue"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateWalkInInput struct {
	BarberID uint

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Date        string
	ArrivalTime string
	Service     string
	Notes       string
}

type CreateWalkInOutput struct {
	WalkIn *models.WalkIn     `json:"walk_in"`
	Entry  *models.QueueEntry `json:"queue_entry"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateWalkIn struct {
	store    domain.Store
	resolver *availability.Resolver
	queue    *queue.Manager
	notifier notify.Notifier
	cfg      config.BookingConfig
	log      zerolog.Logger
}

func NewCreateWalkIn(
	store domain.Store,
	resolver *availability.Resolver,
	q *queue.Manager,
	notifier notify.Notifier,
	cfg config.BookingConfig,
	log zerolog.Logger,
) *CreateWalkIn {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &CreateWalkIn{
		store:    store,
		resolver: resolver,
		queue:    q,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute admits a walk-in at the first slot from its arrival time and puts
// it in the queue.
func (uc *CreateWalkIn) Execute(
	ctx context.Context,
	in CreateWalkInInput,
) (*CreateWalkInOutput, error) {

	if err := validDateTime(in.Date, in.ArrivalTime); err != nil {
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

	var (
		w       *models.WalkIn
		entry   *models.QueueEntry
		created bool
	)
	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.LockQueue(ctx, in.BarberID, in.Date); err != nil {
			return fmt.Errorf("lock queue: %w", err)
		}
		if _, err := openAt(ctx, tx, in.BarberID, in.Date, in.ArrivalTime); err != nil {
			return err
		}

		slot, err := uc.resolver.On(tx).NextAvailable(ctx, in.BarberID, in.Date, in.ArrivalTime, duration)
		if err != nil {
			return err
		}
		if slot == nil {
			return domain.ErrNoSlotAvailable
		}

		w = &models.WalkIn{
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
			BarberID:      in.BarberID,
			Date:          in.Date,
			ArrivalTime:   in.ArrivalTime,
			StartTime:     slot.Start,
			EndTime:       slot.End,
			EstimatedTime: duration,
			Service:       in.Service,
			Status:        string(domain.StatusWaiting),
			Notes:         in.Notes,
		}
		if err := tx.CreateWalkIn(ctx, w); err != nil {
			return fmt.Errorf("create walk-in: %w", err)
		}

		entry, created, err = uc.queue.EnqueueWalkInTx(ctx, tx, w)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(notify.WalkInAccepted(w))
	uc.notifier.Notify(notify.BarberWalkIn(w))
	if created {
		uc.notifier.Notify(notify.TokenAssigned(entry, w.CustomerEmail))
	}

	uc.log.Info().
		Uint("walk_in_id", w.ID).
		Uint("barber_id", w.BarberID).
		Str("token", entry.TokenNumber).
		Int("position", entry.Position).
		Msg("walk-in admitted")

	return &CreateWalkInOutput{WalkIn: w, Entry: entry}, nil
}
