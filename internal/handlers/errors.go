package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

var errorMessages = map[string]string{
	"invalid_format":           "Invalid date or time format.",
	"invalid_interval":         "End time must come after start time.",
	"not_found":                "Record not found.",
	"barber_not_found":         "Barber not found.",
	"slot_unavailable":         "Requested time slot is not available.",
	"no_slot_available":        "No available slots for this date. Please try another date.",
	"outside_working_hours":    "Requested time is outside working hours.",
	"invalid_state_transition": "Status change not allowed.",
	"already_serving":          "A customer is already being served.",
	"queue_empty":              "No customers waiting.",
	"not_ongoing":              "Service is not in progress.",
	"token_generation_failed":  "Could not issue a queue token.",
	"duplicate_appointment":    "You already booked this time.",
	"already_exists":           "Entry already exists.",
	"schedule_limit_reached":   "Entry limit reached. Replacing will delete existing entries.",
}

func statusFor(code string) int {
	switch code {
	case "invalid_format", "invalid_interval":
		return http.StatusBadRequest
	case "not_found", "barber_not_found":
		return http.StatusNotFound
	case "slot_unavailable", "invalid_state_transition", "already_serving",
		"queue_empty", "not_ongoing", "duplicate_appointment",
		"already_exists", "schedule_limit_reached":
		return http.StatusConflict
	case "no_slot_available", "outside_working_hours":
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError maps a use-case error to its HTTP response. Errors without a
// business code are logged on the context and reported as 500.
func writeError(c *gin.Context, err error) {
	code := httperr.Code(err)
	if code == "" {
		_ = c.Error(err)
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	status := statusFor(code)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var unavailable *domain.SlotUnavailableError
	switch {
	case errors.As(err, &unavailable):
		httperr.WriteDetails(c, status, code, errorMessages[code], gin.H{
			"suggested_slot": unavailable.Suggested,
		})
	case code == "schedule_limit_reached":
		httperr.WriteDetails(c, status, code, errorMessages[code], gin.H{
			"limit_reached": true,
		})
	default:
		httperr.Write(c, status, code, errorMessages[code])
	}
}
