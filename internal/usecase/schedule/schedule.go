// Package schedule manages the calendar inputs of availability: a barber's
// dated working hours and blocked slots. Each barber keeps at most a fixed
// number of entries of each kind dated today or later; Replace clears them to
// make room.
package schedule

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

const DefaultMaxEntries = 7

// Count reports how many current entries a barber has and whether the cap is
// hit. Past dates do not count.
type Count struct {
	Count        int64 `json:"count"`
	LimitReached bool  `json:"limit_reached"`
}

func checkBarber(ctx context.Context, repo domain.RecordRepository, barberID uint) error {
	ok, err := repo.IsBarber(ctx, barberID)
	if err != nil {
		return fmt.Errorf("check barber: %w", err)
	}
	if !ok {
		return domain.ErrBarberNotFound
	}
	return nil
}

// validRange checks a dated [start, end) range with end after start.
func validRange(date, start, end string) error {
	if !hhmm.ValidDate(date) {
		return fmt.Errorf("%w: date %q, want YYYY-MM-DD", domain.ErrInvalidFormat, date)
	}
	if !hhmm.Valid(start) || !hhmm.Valid(end) {
		return fmt.Errorf("%w: range %q-%q, want HH:MM", domain.ErrInvalidFormat, start, end)
	}
	ordered, err := domain.TimeSlot{Start: start, End: end}.Ordered()
	if err != nil {
		return err
	}
	if !ordered {
		return fmt.Errorf("%w: %s-%s", domain.ErrInvalidInterval, start, end)
	}
	return nil
}

func clockOrDefault(c timezone.Clock) timezone.Clock {
	if c == nil {
		return timezone.NewShopClock(timezone.DefaultTimezone)
	}
	return c
}

// today is the first date that counts toward the cap.
func today(c timezone.Clock) string {
	return hhmm.DateOf(c.Now())
}

func normalizeMax(n int) int {
	if n <= 0 {
		return DefaultMaxEntries
	}
	return n
}
