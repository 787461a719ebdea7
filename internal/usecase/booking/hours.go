package booking

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// openAt returns the barber's working hours for date when t falls inside
// [start, end). A missing or unavailable day counts as closed.
func openAt(
	ctx context.Context,
	repo domain.AvailabilityReader,
	barberID uint,
	date string,
	t string,
) (*models.WorkingHours, error) {

	wh, err := repo.GetWorkingHours(ctx, barberID, date)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: barber not working on %s", domain.ErrOutsideWorkingHours, date)
	}
	if err != nil {
		return nil, fmt.Errorf("load working hours: %w", err)
	}
	if !wh.IsAvailable {
		return nil, fmt.Errorf("%w: barber not available on %s", domain.ErrOutsideWorkingHours, date)
	}

	afterOpen, err := hhmm.Compare(t, wh.StartTime)
	if err != nil {
		return nil, err
	}
	beforeClose, err := hhmm.Before(t, wh.EndTime)
	if err != nil {
		return nil, err
	}
	if afterOpen < 0 || !beforeClose {
		return nil, fmt.Errorf("%w: %s is outside %s-%s", domain.ErrOutsideWorkingHours, t, wh.StartTime, wh.EndTime)
	}
	return wh, nil
}

func validDateTime(date, t string) error {
	if !hhmm.ValidDate(date) {
		return fmt.Errorf("%w: date %q, want YYYY-MM-DD", domain.ErrInvalidFormat, date)
	}
	if !hhmm.Valid(t) {
		return fmt.Errorf("%w: time %q, want HH:MM", domain.ErrInvalidFormat, t)
	}
	return nil
}
