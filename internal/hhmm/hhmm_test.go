package hhmm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	for _, s := range []string{"00:00", "23:59", "09:30", "12:00"} {
		assert.True(t, Valid(s), s)
	}
	for _, s := range []string{"24:00", "12:60", "9:30", "", "09:3", "09-30", " 09:30"} {
		assert.False(t, Valid(s), s)
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-02-29"))
	assert.True(t, ValidDate("2026-10-18"))
	assert.False(t, ValidDate("2024-02-30"))
	assert.False(t, ValidDate("2023-02-29"))
	assert.False(t, ValidDate("2024-2-01"))
	assert.False(t, ValidDate("20240201"))
}

func TestCompare(t *testing.T) {
	c, err := Compare("09:00", "09:30")
	require.NoError(t, err)
	assert.Negative(t, c)

	c, err = Compare("09:30", "09:00")
	require.NoError(t, err)
	assert.Positive(t, c)

	c, err = Compare("14:15", "14:15")
	require.NoError(t, err)
	assert.Zero(t, c)

	_, err = Compare("9:00", "09:00")
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestAdd(t *testing.T) {
	tests := []struct {
		in   string
		m    int
		want string
	}{
		{"23:50", 20, "00:10"},
		{"10:00", -30, "09:30"},
		{"00:10", -20, "23:50"},
		{"09:00", 0, "09:00"},
		{"09:00", 24 * 60, "09:00"},
		{"08:45", 90, "10:15"},
	}
	for _, tt := range tests {
		got, err := Add(tt.in, tt.m)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s%+d", tt.in, tt.m)
	}

	_, err := Add("25:00", 5)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestBetween(t *testing.T) {
	m, err := Between("09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, m)

	m, err = Between("23:50", "00:10")
	require.NoError(t, err)
	assert.Equal(t, 20, m)

	m, err = Between("10:00", "10:00")
	require.NoError(t, err)
	assert.Zero(t, m)
}

func TestAddAndBetweenAreInverse(t *testing.T) {
	pairs := [][2]string{{"09:00", "17:00"}, {"22:00", "01:15"}, {"00:00", "23:59"}}
	for _, p := range pairs {
		m, err := Between(p[0], p[1])
		require.NoError(t, err)
		got, err := Add(p[0], m)
		require.NoError(t, err)
		assert.Equal(t, p[1], got)
	}
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2026, 3, 4, 7, 5, 59, 0, time.UTC)
	assert.Equal(t, "07:05", FromTime(ts))
	assert.Equal(t, "2026-03-04", DateOf(ts))
}
