// Package token issues human-readable queue tokens such as
// APPT-20250602-3FA9.
package token

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
)

const suffixLen = 4

type Config struct {
	AppointmentPrefix string
	WalkInPrefix      string
	Delimiter         string
}

type Generator struct {
	cfg    Config
	suffix func() string
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg, suffix: uuidSuffix}
}

// WithSuffix returns a copy of g that draws suffixes from fn.
func (g *Generator) WithSuffix(fn func() string) *Generator {
	cp := *g
	cp.suffix = fn
	return &cp
}

// Generate returns {PREFIX}{delim}{YYYYMMDD}{delim}{SUFFIX} for a source
// kind and a YYYY-MM-DD date.
func (g *Generator) Generate(kind booking.SourceType, date string) (string, error) {
	var prefix string
	switch kind {
	case booking.SourceAppointment:
		prefix = g.cfg.AppointmentPrefix
	case booking.SourceWalkIn:
		prefix = g.cfg.WalkInPrefix
	default:
		return "", fmt.Errorf("token: unknown source kind %q", kind)
	}
	if !hhmm.ValidDate(date) {
		return "", fmt.Errorf("%w: date %q, want YYYY-MM-DD", booking.ErrInvalidFormat, date)
	}

	d := g.cfg.Delimiter
	return prefix + d + strings.ReplaceAll(date, "-", "") + d + g.suffix(), nil
}

func uuidSuffix() string {
	return strings.ToUpper(uuid.NewString()[:suffixLen])
}
