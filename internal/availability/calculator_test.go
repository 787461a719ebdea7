package availability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const day = "2025-06-02"

func seedDay(t *testing.T, start, end string) *memstore.Store {
	t.Helper()
	s := memstore.New()
	require.NoError(t, s.CreateWorkingHours(context.Background(), &models.WorkingHours{
		BarberID:    1,
		Date:        day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}))
	return s
}

func TestFreeIntervalsWithApprovedAppointment(t *testing.T) {
	ctx := context.Background()
	s := seedDay(t, "09:00", "12:00")
	require.NoError(t, s.CreateAppointment(ctx, &models.Appointment{
		CustomerEmail: "a@x.io", BarberID: 1, Date: day,
		RequestedTime: "10:00", StartTime: "10:00", EndTime: "10:30",
		Status: string(booking.StatusApproved),
	}))

	calc := NewCalculator(s, 10, zerolog.Nop())
	free, err := calc.FreeIntervals(ctx, 1, day)
	require.NoError(t, err)

	assert.Equal(t, []booking.TimeSlot{
		{Start: "09:05", End: "09:55"},
		{Start: "10:35", End: "11:55"},
	}, free)
}

func TestFreeIntervalsNoWorkingHours(t *testing.T) {
	calc := NewCalculator(memstore.New(), 10, zerolog.Nop())
	free, err := calc.FreeIntervals(context.Background(), 1, day)
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestFreeIntervalsUnavailableDay(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.CreateWorkingHours(ctx, &models.WorkingHours{
		BarberID: 1, Date: day, StartTime: "09:00", EndTime: "17:00", IsAvailable: false,
	}))

	free, err := NewCalculator(s, 10, zerolog.Nop()).FreeIntervals(ctx, 1, day)
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestFreeIntervalsInvalidDate(t *testing.T) {
	calc := NewCalculator(memstore.New(), 10, zerolog.Nop())
	_, err := calc.FreeIntervals(context.Background(), 1, "2024-02-30")
	assert.ErrorIs(t, err, booking.ErrInvalidFormat)
}

func TestFreeIntervalsBusySources(t *testing.T) {
	ctx := context.Background()
	s := seedDay(t, "09:00", "13:00")

	require.NoError(t, s.CreateBlockedSlot(ctx, &models.BlockedSlot{BarberID: 1, Date: day, StartTime: "12:00", EndTime: "13:00"}))
	require.NoError(t, s.CreateWalkIn(ctx, &models.WalkIn{
		BarberID: 1, Date: day, ArrivalTime: "09:00", StartTime: "09:00", EndTime: "09:30",
		Status: string(booking.StatusWaiting),
	}))
	// Ignored: completed walk-in, rejected appointment, pending without a slot.
	require.NoError(t, s.CreateWalkIn(ctx, &models.WalkIn{
		BarberID: 1, Date: day, ArrivalTime: "10:00", StartTime: "10:00", EndTime: "10:30",
		Status: string(booking.StatusCompleted),
	}))
	require.NoError(t, s.CreateAppointment(ctx, &models.Appointment{
		CustomerEmail: "r@x.io", BarberID: 1, Date: day, RequestedTime: "11:00",
		StartTime: "11:00", EndTime: "11:30", Status: string(booking.StatusRejected),
	}))
	require.NoError(t, s.CreateAppointment(ctx, &models.Appointment{
		CustomerEmail: "p@x.io", BarberID: 1, Date: day, RequestedTime: "11:00",
		Status: string(booking.StatusPendingApproval),
	}))

	free, err := NewCalculator(s, 0, zerolog.Nop()).FreeIntervals(ctx, 1, day)
	require.NoError(t, err)
	assert.Equal(t, []booking.TimeSlot{{Start: "09:30", End: "12:00"}}, free)
}

func TestComputeOverlappingBusyDoesNotRegress(t *testing.T) {
	busy := []booking.TimeSlot{
		{Start: "10:00", End: "11:30"},
		{Start: "09:30", End: "10:00"},
		{Start: "10:15", End: "10:45"},
	}
	free, err := Compute(booking.TimeSlot{Start: "09:00", End: "12:00"}, busy, 0)
	require.NoError(t, err)
	assert.Equal(t, []booking.TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "11:30", End: "12:00"},
	}, free)
}

func TestComputeBuffer(t *testing.T) {
	busy := []booking.TimeSlot{
		{Start: "09:08", End: "10:00"},
		{Start: "10:10", End: "11:55"},
	}
	free, err := Compute(booking.TimeSlot{Start: "09:00", End: "12:00"}, busy, 10)
	require.NoError(t, err)
	// 09:00-09:08 is shorter than the buffer and 11:55-12:00 too; the
	// 10-minute gap shrinks to nothing.
	assert.Empty(t, free)

	free, err = Compute(booking.TimeSlot{Start: "09:00", End: "12:00"}, busy, 7)
	require.NoError(t, err)
	assert.Equal(t, []booking.TimeSlot{
		{Start: "09:03", End: "09:05"},
		{Start: "10:03", End: "10:07"},
	}, free)
}

func TestComputeBusyOutsideWindow(t *testing.T) {
	busy := []booking.TimeSlot{
		{Start: "08:00", End: "09:15"},
		{Start: "17:30", End: "18:00"},
	}
	free, err := Compute(booking.TimeSlot{Start: "09:00", End: "17:00"}, busy, 0)
	require.NoError(t, err)
	assert.Equal(t, []booking.TimeSlot{{Start: "09:15", End: "17:00"}}, free)
}

func TestComputeRejectsBadWindow(t *testing.T) {
	_, err := Compute(booking.TimeSlot{Start: "9:00", End: "17:00"}, nil, 10)
	assert.ErrorIs(t, err, booking.ErrInvalidFormat)
}
