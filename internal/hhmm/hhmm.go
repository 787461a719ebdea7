// Package hhmm implements wall-clock arithmetic over "HH:MM" strings scoped to
// a single calendar day.
//
// All functions share one cross-midnight policy: minutes are counted modulo
// 24h, so Add and Between are inverses of each other
// (Add(a, Between(a, b)) == b). Callers that need a same-day interval must
// check that the end comes after the start; see Before.
package hhmm

import (
	"fmt"
	"regexp"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

const (
	Layout     = "15:04"
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

var ErrInvalidFormat = httperr.ErrBusiness("invalid_format")

var (
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Valid reports whether s is a 24-hour HH:MM time with leading zeros.
func Valid(s string) bool {
	return timeRe.MatchString(s)
}

// ValidDate reports whether s is YYYY-MM-DD and names a real calendar day.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return d.Format(DateLayout) == s
}

// Minutes returns the minute-of-day for s.
func Minutes(s string) (int, error) {
	if !Valid(s) {
		return 0, fmt.Errorf("%w: time %q, want HH:MM", ErrInvalidFormat, s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, nil
}

// FromMinutes formats a minute offset as HH:MM, wrapping modulo 24h.
func FromMinutes(m int) string {
	m %= minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Compare returns a negative number when a < b, zero when equal and a
// positive number when a > b.
func Compare(a, b string) (int, error) {
	am, err := Minutes(a)
	if err != nil {
		return 0, err
	}
	bm, err := Minutes(b)
	if err != nil {
		return 0, err
	}
	return am - bm, nil
}

// Before reports whether a is strictly earlier than b on the same day.
func Before(a, b string) (bool, error) {
	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Add adds m minutes (m may be negative) to t, wrapping modulo 24h.
func Add(t string, m int) (string, error) {
	tm, err := Minutes(t)
	if err != nil {
		return "", err
	}
	return FromMinutes(tm + m), nil
}

// Between returns b-a in minutes. When b is earlier than a it is taken to be
// on the following day.
func Between(a, b string) (int, error) {
	am, err := Minutes(a)
	if err != nil {
		return 0, err
	}
	bm, err := Minutes(b)
	if err != nil {
		return 0, err
	}
	if bm < am {
		bm += minutesPerDay
	}
	return bm - am, nil
}

// FromTime formats the wall-clock part of t as HH:MM in t's location.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// DateOf formats the calendar day of t as YYYY-MM-DD in t's location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
