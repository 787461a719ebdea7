package notify

import "github.com/BruksfildServices01/barber-queue/internal/models"

var statusMessages = map[string]string{
	"approved":  "Your appointment has been approved!",
	"rejected":  "Your appointment has been rejected.",
	"completed": "Your appointment has been marked as completed.",
	"ongoing":   "Your appointment is now in progress.",
	"no-show":   "Your appointment was marked as a no-show.",
}

func AppointmentStatusChanged(ap *models.Appointment) Notification {
	msg, ok := statusMessages[ap.Status]
	if !ok {
		msg = "Your appointment status has been updated."
	}
	at := ap.StartTime
	if at == "" {
		at = ap.RequestedTime
	}
	return Notification{
		Kind:      KindAppointmentStatusChanged,
		BarberID:  ap.BarberID,
		Recipient: ap.CustomerEmail,
		Title:     "Appointment Update",
		Message:   msg,
		Data: map[string]any{
			"appointment_id": ap.ID,
			"date":           ap.Date,
			"time":           at,
			"service":        ap.Service,
			"status":         ap.Status,
		},
	}
}

func WalkInAccepted(w *models.WalkIn) Notification {
	return Notification{
		Kind:      KindWalkInAccepted,
		BarberID:  w.BarberID,
		Recipient: w.CustomerEmail,
		Title:     "Walk-in Accepted",
		Message:   "Your walk-in request has been accepted and added to our queue.",
		Data: map[string]any{
			"walk_in_id":   w.ID,
			"date":         w.Date,
			"arrival_time": w.ArrivalTime,
			"start_time":   w.StartTime,
			"service":      w.Service,
			"token_number": w.TokenNumber,
		},
	}
}

func TokenAssigned(e *models.QueueEntry, recipient string) Notification {
	return Notification{
		Kind:      KindTokenAssigned,
		BarberID:  e.BarberID,
		Recipient: recipient,
		Title:     "Queue Token Assigned",
		Message:   "You have been added to our waiting queue.",
		Data: map[string]any{
			"entry_id":             e.ID,
			"date":                 e.Date,
			"token_number":         e.TokenNumber,
			"position":             e.Position,
			"estimated_start_time": e.EstimatedStartTime,
		},
	}
}

func BarberWalkIn(w *models.WalkIn) Notification {
	return Notification{
		Kind:     KindBarberWalkIn,
		BarberID: w.BarberID,
		Title:    "New Walk-in Customer",
		Message:  "A new walk-in customer has been added to your queue.",
		Data: map[string]any{
			"walk_in_id":    w.ID,
			"customer_name": w.CustomerName,
			"date":          w.Date,
			"arrival_time":  w.ArrivalTime,
			"service":       w.Service,
			"token_number":  w.TokenNumber,
		},
	}
}

func AutoRejected(ap *models.Appointment) Notification {
	return Notification{
		Kind:      KindAutoRejected,
		BarberID:  ap.BarberID,
		Recipient: ap.CustomerEmail,
		Title:     "Appointment Auto-Rejected",
		Message:   "Your appointment request has been automatically rejected because it was not approved within the required time frame.",
		Data: map[string]any{
			"appointment_id": ap.ID,
			"date":           ap.Date,
			"requested_time": ap.RequestedTime,
			"service":        ap.Service,
		},
	}
}
