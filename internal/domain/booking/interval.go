package booking

import "github.com/BruksfildServices01/barber-queue/internal/hhmm"

// TimeSlot is a half-open interval of wall-clock HH:MM times on one day.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Ordered reports whether End comes strictly after Start on the same day.
func (s TimeSlot) Ordered() (bool, error) {
	return hhmm.Before(s.Start, s.End)
}
