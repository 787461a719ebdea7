package booking

import (
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Approve moves a pending appointment to approved and pins its slot to the
// requested time when no concrete slot was recorded yet.
func Approve(ap *models.Appointment) error {
	if !CanTransition(SourceAppointment, Status(ap.Status), StatusApproved) {
		return ErrInvalidStateTransition
	}
	if ap.StartTime == "" {
		ap.StartTime = ap.RequestedTime
	}
	if ap.EndTime == "" {
		end, err := hhmm.Add(ap.StartTime, ap.EstimatedTime)
		if err != nil {
			return err
		}
		ap.EndTime = end
	}
	ap.Status = string(StatusApproved)
	return nil
}

// Record is the common view over an appointment or walk-in.
type Record struct {
	Source        Source
	BarberID      uint
	Date          string
	Status        Status
	StartTime     string
	EstimatedTime int
	TokenNumber   string

	Appointment *models.Appointment
	WalkIn      *models.WalkIn
}

func AppointmentRecord(ap *models.Appointment) *Record {
	start := ap.StartTime
	if start == "" {
		start = ap.RequestedTime
	}
	return &Record{
		Source:        AppointmentRef{AppointmentID: ap.ID},
		BarberID:      ap.BarberID,
		Date:          ap.Date,
		Status:        Status(ap.Status),
		StartTime:     start,
		EstimatedTime: ap.EstimatedTime,
		TokenNumber:   ap.TokenNumber,
		Appointment:   ap,
	}
}

func WalkInRecord(w *models.WalkIn) *Record {
	start := w.StartTime
	if start == "" {
		start = w.ArrivalTime
	}
	return &Record{
		Source:        WalkInRef{WalkInID: w.ID},
		BarberID:      w.BarberID,
		Date:          w.Date,
		Status:        Status(w.Status),
		StartTime:     start,
		EstimatedTime: w.EstimatedTime,
		TokenNumber:   w.TokenNumber,
		WalkIn:        w,
	}
}

// SetStatus writes status onto the underlying record.
func (r *Record) SetStatus(s Status) {
	r.Status = s
	switch {
	case r.Appointment != nil:
		r.Appointment.Status = string(s)
	case r.WalkIn != nil:
		r.WalkIn.Status = string(s)
	}
}

func (r *Record) SetToken(token string) {
	r.TokenNumber = token
	switch {
	case r.Appointment != nil:
		r.Appointment.TokenNumber = token
	case r.WalkIn != nil:
		r.WalkIn.TokenNumber = token
	}
}

// StampStart records the concrete service start on the underlying record.
func (r *Record) StampStart(t string) {
	r.StartTime = t
	switch {
	case r.Appointment != nil:
		r.Appointment.StartTime = t
	case r.WalkIn != nil:
		r.WalkIn.StartTime = t
	}
}

func (r *Record) StampEnd(t string) {
	switch {
	case r.Appointment != nil:
		r.Appointment.EndTime = t
	case r.WalkIn != nil:
		r.WalkIn.EndTime = t
	}
}
