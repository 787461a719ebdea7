package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type WorkingHoursInput struct {
	BarberID    uint
	Date        string
	StartTime   string
	EndTime     string
	IsAvailable *bool
}

// ======================================================
// USE CASE
// ======================================================

type WorkingHours struct {
	store domain.Store
	max   int
	clock timezone.Clock
	log   zerolog.Logger
}

func NewWorkingHours(store domain.Store, maxEntries int, clock timezone.Clock, log zerolog.Logger) *WorkingHours {
	return &WorkingHours{
		store: store,
		max:   normalizeMax(maxEntries),
		clock: clockOrDefault(clock),
		log:   log,
	}
}

// Create adds working hours for a date. It fails with ErrAlreadyExists when
// the date is already defined and ErrScheduleLimitReached at the cap.
func (uc *WorkingHours) Create(ctx context.Context, in WorkingHoursInput) (*models.WorkingHours, error) {
	wh, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}

	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		_, err := tx.GetWorkingHours(ctx, in.BarberID, in.Date)
		switch {
		case err == nil:
			return domain.ErrAlreadyExists
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("load working hours: %w", err)
		}
		n, err := tx.CountWorkingHours(ctx, in.BarberID, today(uc.clock))
		if err != nil {
			return fmt.Errorf("count working hours: %w", err)
		}
		if n >= int64(uc.max) {
			return domain.ErrScheduleLimitReached
		}
		return tx.CreateWorkingHours(ctx, wh)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Uint("barber_id", wh.BarberID).Str("date", wh.Date).Msg("working hours created")
	return wh, nil
}

// Replace deletes every working-hours entry of the barber, then creates the
// new one.
func (uc *WorkingHours) Replace(ctx context.Context, in WorkingHoursInput) (*models.WorkingHours, error) {
	wh, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}

	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.DeleteAllWorkingHours(ctx, in.BarberID); err != nil {
			return fmt.Errorf("clear working hours: %w", err)
		}
		return tx.CreateWorkingHours(ctx, wh)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Uint("barber_id", wh.BarberID).Str("date", wh.Date).Msg("working hours replaced")
	return wh, nil
}

// Update changes an entry owned by barberID. Empty fields keep their value.
func (uc *WorkingHours) Update(ctx context.Context, id uint, in WorkingHoursInput) (*models.WorkingHours, error) {
	wh, err := uc.owned(ctx, in.BarberID, id)
	if err != nil {
		return nil, err
	}

	if in.Date != "" {
		wh.Date = in.Date
	}
	if in.StartTime != "" {
		wh.StartTime = in.StartTime
	}
	if in.EndTime != "" {
		wh.EndTime = in.EndTime
	}
	if in.IsAvailable != nil {
		wh.IsAvailable = *in.IsAvailable
	}
	if err := validRange(wh.Date, wh.StartTime, wh.EndTime); err != nil {
		return nil, err
	}

	if err := uc.store.UpdateWorkingHours(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

func (uc *WorkingHours) Delete(ctx context.Context, barberID, id uint) error {
	if _, err := uc.owned(ctx, barberID, id); err != nil {
		return err
	}
	return uc.store.DeleteWorkingHours(ctx, id)
}

func (uc *WorkingHours) List(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	return uc.store.ListWorkingHours(ctx, barberID)
}

func (uc *WorkingHours) Count(ctx context.Context, barberID uint) (Count, error) {
	n, err := uc.store.CountWorkingHours(ctx, barberID, today(uc.clock))
	if err != nil {
		return Count{}, err
	}
	return Count{Count: n, LimitReached: n >= int64(uc.max)}, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (uc *WorkingHours) build(ctx context.Context, in WorkingHoursInput) (*models.WorkingHours, error) {
	if err := validRange(in.Date, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	if err := checkBarber(ctx, uc.store, in.BarberID); err != nil {
		return nil, err
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return &models.WorkingHours{
		BarberID:    in.BarberID,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsAvailable: available,
	}, nil
}

// owned loads an entry; barberID 0 skips the ownership check.
func (uc *WorkingHours) owned(ctx context.Context, barberID, id uint) (*models.WorkingHours, error) {
	wh, err := uc.store.GetWorkingHoursByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if barberID != 0 && wh.BarberID != barberID {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}
