// Package availability computes a barber's bookable time for a day and
// resolves individual booking requests against it.
package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
)

const DefaultBufferMinutes = 10

type Calculator struct {
	repo   booking.AvailabilityReader
	buffer int
	log    zerolog.Logger
}

func NewCalculator(repo booking.AvailabilityReader, bufferMinutes int, log zerolog.Logger) *Calculator {
	if bufferMinutes < 0 {
		bufferMinutes = 0
	}
	return &Calculator{
		repo:   repo,
		buffer: bufferMinutes,
		log:    log.With().Str("component", "availability").Logger(),
	}
}

// On returns a copy of c that reads through r, typically a transactional
// store.
func (c *Calculator) On(r booking.AvailabilityReader) *Calculator {
	cp := *c
	cp.repo = r
	return &cp
}

// FreeIntervals returns the buffered free intervals of a barber's day in
// start order. A day without working hours, or marked unavailable, has none.
func (c *Calculator) FreeIntervals(ctx context.Context, barberID uint, date string) ([]booking.TimeSlot, error) {
	if !hhmm.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q, want YYYY-MM-DD", booking.ErrInvalidFormat, date)
	}

	wh, err := c.repo.GetWorkingHours(ctx, barberID, date)
	if errors.Is(err, booking.ErrNotFound) {
		return []booking.TimeSlot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load working hours: %w", err)
	}
	if !wh.IsAvailable {
		return []booking.TimeSlot{}, nil
	}

	busy, err := c.busyIntervals(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	return Compute(booking.TimeSlot{Start: wh.StartTime, End: wh.EndTime}, busy, c.buffer)
}

func (c *Calculator) busyIntervals(ctx context.Context, barberID uint, date string) ([]booking.TimeSlot, error) {
	appointments, err := c.repo.ListAppointments(ctx, booking.AppointmentFilter{
		BarberID: barberID,
		Date:     date,
		Statuses: booking.BusyAppointmentStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	blocked, err := c.repo.ListBlockedSlots(ctx, barberID, date)
	if err != nil {
		return nil, fmt.Errorf("list blocked slots: %w", err)
	}

	walkIns, err := c.repo.ListWalkIns(ctx, barberID, date, booking.BusyWalkInStatuses...)
	if err != nil {
		return nil, fmt.Errorf("list walk-ins: %w", err)
	}

	busy := make([]booking.TimeSlot, 0, len(appointments)+len(blocked)+len(walkIns))
	for _, a := range appointments {
		busy = append(busy, booking.TimeSlot{Start: a.StartTime, End: a.EndTime})
	}
	for _, b := range blocked {
		busy = append(busy, booking.TimeSlot{Start: b.StartTime, End: b.EndTime})
	}
	for _, w := range walkIns {
		busy = append(busy, booking.TimeSlot{Start: w.StartTime, End: w.EndTime})
	}

	kept := busy[:0]
	dropped := 0
	for _, s := range busy {
		if !hhmm.Valid(s.Start) || !hhmm.Valid(s.End) {
			dropped++
			continue
		}
		kept = append(kept, s)
	}
	if dropped > 0 {
		c.log.Debug().
			Uint("barber_id", barberID).
			Str("date", date).
			Int("dropped", dropped).
			Msg("ignoring busy records without a concrete start and end")
	}
	return kept, nil
}

// Compute sweeps busy intervals across the working window and returns the
// gaps, each shrunk by floor(buffer/2) minutes at both ends. Gaps shorter
// than buffer, or empty after shrinking, are dropped. busy is sorted in
// place.
func Compute(work booking.TimeSlot, busy []booking.TimeSlot, buffer int) ([]booking.TimeSlot, error) {
	workStart, err := hhmm.Minutes(work.Start)
	if err != nil {
		return nil, err
	}
	workEnd, err := hhmm.Minutes(work.End)
	if err != nil {
		return nil, err
	}

	type span struct{ start, end int }
	spans := make([]span, 0, len(busy))
	for _, b := range busy {
		s, err := hhmm.Minutes(b.Start)
		if err != nil {
			return nil, err
		}
		e, err := hhmm.Minutes(b.End)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span{s, e})
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var gaps []span
	cursor := workStart
	for _, b := range spans {
		if end := min(b.start, workEnd); cursor < end {
			gaps = append(gaps, span{cursor, end})
		}
		if cursor < b.end {
			cursor = b.end
		}
	}
	if cursor < workEnd {
		gaps = append(gaps, span{cursor, workEnd})
	}

	half := buffer / 2
	out := make([]booking.TimeSlot, 0, len(gaps))
	for _, g := range gaps {
		if g.end-g.start < buffer {
			continue
		}
		s, e := g.start+half, g.end-half
		if s >= e {
			continue
		}
		out = append(out, booking.TimeSlot{Start: hhmm.FromMinutes(s), End: hhmm.FromMinutes(e)})
	}
	return out, nil
}
