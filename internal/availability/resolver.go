package availability

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
)

// Resolver answers booking questions against a Calculator.
type Resolver struct {
	calc    *Calculator
	metrics *metrics.Metrics
}

func NewResolver(calc *Calculator, m *metrics.Metrics) *Resolver {
	return &Resolver{calc: calc, metrics: m}
}

func (r *Resolver) On(reader booking.AvailabilityReader) *Resolver {
	return &Resolver{calc: r.calc.On(reader), metrics: r.metrics}
}

// IsAvailable reports whether [start, end] lies inside one free interval.
// An interval whose end does not come after its start is never available.
func (r *Resolver) IsAvailable(ctx context.Context, barberID uint, date, start, end string) (bool, error) {
	if !hhmm.Valid(start) || !hhmm.Valid(end) {
		return false, fmt.Errorf("%w: slot %s-%s", booking.ErrInvalidFormat, start, end)
	}
	free, err := r.calc.FreeIntervals(ctx, barberID, date)
	if err != nil {
		return false, err
	}
	ok, err := Fits(free, start, end)
	if err != nil {
		return false, err
	}
	r.metrics.ObserveAvailability(ok)
	return ok, nil
}

// NextAvailable returns the requested slot when it fits verbatim, otherwise
// the start of the first later free interval long enough for duration.
// It returns nil when nothing fits.
func (r *Resolver) NextAvailable(ctx context.Context, barberID uint, date, requested string, duration int) (*booking.TimeSlot, error) {
	if !hhmm.Valid(requested) {
		return nil, fmt.Errorf("%w: time %q, want HH:MM", booking.ErrInvalidFormat, requested)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration %d", booking.ErrInvalidInterval, duration)
	}
	free, err := r.calc.FreeIntervals(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	slot, err := NextFit(free, requested, duration)
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveAvailability(slot != nil && slot.Start == requested)
	return slot, nil
}

// Fits reports whether [start, end] is contained in one of free.
func Fits(free []booking.TimeSlot, start, end string) (bool, error) {
	s, err := hhmm.Minutes(start)
	if err != nil {
		return false, err
	}
	e, err := hhmm.Minutes(end)
	if err != nil {
		return false, err
	}
	if e <= s {
		return false, nil
	}
	for _, f := range free {
		fs, err := hhmm.Minutes(f.Start)
		if err != nil {
			return false, err
		}
		fe, err := hhmm.Minutes(f.End)
		if err != nil {
			return false, err
		}
		if s >= fs && e <= fe {
			return true, nil
		}
	}
	return false, nil
}

// NextFit is the pure form of NextAvailable. Only interval starts are tried
// after the verbatim check.
func NextFit(free []booking.TimeSlot, requested string, duration int) (*booking.TimeSlot, error) {
	end, err := hhmm.Add(requested, duration)
	if err != nil {
		return nil, err
	}
	ok, err := Fits(free, requested, end)
	if err != nil {
		return nil, err
	}
	if ok {
		return &booking.TimeSlot{Start: requested, End: end}, nil
	}

	for _, f := range free {
		after, err := hhmm.Before(requested, f.Start)
		if err != nil {
			return nil, err
		}
		if !after {
			continue
		}
		length, err := hhmm.Between(f.Start, f.End)
		if err != nil {
			return nil, err
		}
		if length < duration {
			continue
		}
		slotEnd, err := hhmm.Add(f.Start, duration)
		if err != nil {
			return nil, err
		}
		return &booking.TimeSlot{Start: f.Start, End: slotEnd}, nil
	}
	return nil, nil
}
