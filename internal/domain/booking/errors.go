package booking

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

var (
	ErrInvalidFormat          = hhmm.ErrInvalidFormat
	ErrNotFound               = httperr.ErrBusiness("not_found")
	ErrSlotUnavailable        = httperr.ErrBusiness("slot_unavailable")
	ErrNoSlotAvailable        = httperr.ErrBusiness("no_slot_available")
	ErrInvalidStateTransition = httperr.ErrBusiness("invalid_state_transition")
	ErrAlreadyServing         = httperr.ErrBusiness("already_serving")
	ErrQueueEmpty             = httperr.ErrBusiness("queue_empty")
	ErrNotOngoing             = httperr.ErrBusiness("not_ongoing")
	ErrTokenGenerationFailed  = httperr.ErrBusiness("token_generation_failed")
	ErrDuplicateAppointment   = httperr.ErrBusiness("duplicate_appointment")
	ErrOutsideWorkingHours    = httperr.ErrBusiness("outside_working_hours")
	ErrScheduleLimitReached   = httperr.ErrBusiness("schedule_limit_reached")
	ErrAlreadyExists          = httperr.ErrBusiness("already_exists")
	ErrInvalidInterval        = httperr.ErrBusiness("invalid_interval")
	ErrBarberNotFound         = httperr.ErrBusiness("barber_not_found")

	// ErrDuplicateToken is returned by stores when a queue token collides.
	// The queue manager retries on it and never surfaces it.
	ErrDuplicateToken = errors.New("duplicate queue token")
)

// IsInvalidStateTransition matches ErrInvalidStateTransition and its
// specific forms.
func IsInvalidStateTransition(err error) bool {
	return errors.Is(err, ErrInvalidStateTransition) ||
		errors.Is(err, ErrAlreadyServing) ||
		errors.Is(err, ErrQueueEmpty) ||
		errors.Is(err, ErrNotOngoing)
}

// SlotUnavailableError reports a rejected time together with the nearest
// bookable alternative.
type SlotUnavailableError struct {
	Suggested TimeSlot
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%s: next available %s-%s", ErrSlotUnavailable, e.Suggested.Start, e.Suggested.End)
}

func (e *SlotUnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotUnavailable
}
