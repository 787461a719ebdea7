package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.Booking.BufferMinutes)
	assert.Equal(t, 30, cfg.Booking.DefaultDuration)
	assert.Equal(t, 7, cfg.Booking.MaxScheduleEntries)
	assert.Equal(t, 2*time.Hour, cfg.Sweeper.PendingTimeLimit)
	assert.Equal(t, 15*time.Minute, cfg.Sweeper.Interval)
	assert.Equal(t, "APPT", cfg.Token.AppointmentPrefix)
	assert.Equal(t, "WALKIN", cfg.Token.WalkInPrefix)
	assert.Equal(t, "-", cfg.Token.Delimiter)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("BUFFER_MINUTES", "6")
	t.Setenv("SWEEP_INTERVAL", "5m")
	t.Setenv("SERVICE_DURATIONS", "Hot Towel=25, haircut=35")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Booking.BufferMinutes)
	assert.Equal(t, 5*time.Minute, cfg.Sweeper.Interval)
	assert.Equal(t, 25, cfg.Booking.ServiceDuration("hot towel"))
	assert.Equal(t, 35, cfg.Booking.ServiceDuration("Haircut"))
	assert.Equal(t, 15, cfg.Booking.ServiceDuration("beard trim"))
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SWEEP_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SHOP_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

func TestServiceDuration(t *testing.T) {
	b := Default().Booking

	assert.Equal(t, 45, b.ServiceDuration("Haircut and Beard"))
	assert.Equal(t, 20, b.ServiceDuration("kids  haircut"))
	assert.Equal(t, 30, b.ServiceDuration("mystery service"))
	assert.True(t, b.KnownService("Full Service"))
	assert.False(t, b.KnownService("mystery"))
}

func TestServiceKey(t *testing.T) {
	assert.Equal(t, "haircut-and-styling", ServiceKey("  Haircut and   Styling "))
}

func TestParseServiceDurationsErrors(t *testing.T) {
	_, err := ParseServiceDurations("haircut")
	assert.Error(t, err)

	_, err = ParseServiceDurations("haircut=abc")
	assert.Error(t, err)

	_, err = ParseServiceDurations("haircut=0")
	assert.Error(t, err)
}
