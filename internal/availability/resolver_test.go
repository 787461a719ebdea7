package availability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	ctx := context.Background()
	s := seedDay(t, "09:00", "12:00")
	require.NoError(t, s.CreateAppointment(ctx, &models.Appointment{
		CustomerEmail: "a@x.io", BarberID: 1, Date: day,
		RequestedTime: "10:00", StartTime: "10:00", EndTime: "10:30",
		Status: string(booking.StatusApproved),
	}))
	calc := NewCalculator(s, 10, zerolog.Nop())
	return NewResolver(calc, metrics.New(prometheus.NewRegistry()))
}

func TestIsAvailable(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()

	ok, err := r.IsAvailable(ctx, 1, day, "09:10", "09:40")
	require.NoError(t, err)
	assert.True(t, ok)

	// Straddles the free interval and the appointment.
	ok, err = r.IsAvailable(ctx, 1, day, "09:40", "10:10")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.IsAvailable(ctx, 1, day, "11:00", "10:50")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.IsAvailable(ctx, 1, day, "9:10", "09:40")
	assert.ErrorIs(t, err, booking.ErrInvalidFormat)
}

func TestNextAvailableVerbatim(t *testing.T) {
	slot, err := newResolver(t).NextAvailable(context.Background(), 1, day, "09:10", 30)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, booking.TimeSlot{Start: "09:10", End: "09:40"}, *slot)
}

func TestNextAvailableInsideBusy(t *testing.T) {
	slot, err := newResolver(t).NextAvailable(context.Background(), 1, day, "10:00", 30)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, booking.TimeSlot{Start: "10:35", End: "11:05"}, *slot)
}

func TestNextAvailableSkipsShortGap(t *testing.T) {
	free := []booking.TimeSlot{
		{Start: "09:05", End: "09:20"},
		{Start: "09:50", End: "10:10"},
		{Start: "11:00", End: "12:00"},
	}
	slot, err := NextFit(free, "09:00", 45)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, booking.TimeSlot{Start: "11:00", End: "11:45"}, *slot)
}

func TestNextAvailableNone(t *testing.T) {
	slot, err := newResolver(t).NextAvailable(context.Background(), 1, day, "11:30", 60)
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestNextAvailableRejectsBadDuration(t *testing.T) {
	_, err := newResolver(t).NextAvailable(context.Background(), 1, day, "09:00", 0)
	assert.ErrorIs(t, err, booking.ErrInvalidInterval)
}

func TestNextFitNeverCrossesMidnight(t *testing.T) {
	free := []booking.TimeSlot{{Start: "23:00", End: "23:55"}}
	slot, err := NextFit(free, "23:40", 30)
	require.NoError(t, err)
	assert.Nil(t, slot)
}
