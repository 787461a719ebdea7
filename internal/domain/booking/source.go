package booking

import (
	"fmt"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type SourceType string

const (
	SourceAppointment SourceType = "appointment"
	SourceWalkIn      SourceType = "walkin"
)

// Source identifies the record a queue entry serves. It is closed to
// AppointmentRef and WalkInRef.
type Source interface {
	Type() SourceType
	ID() uint
	isSource()
}

type AppointmentRef struct {
	AppointmentID uint
}

func (AppointmentRef) Type() SourceType { return SourceAppointment }
func (r AppointmentRef) ID() uint       { return r.AppointmentID }
func (AppointmentRef) isSource()        {}

type WalkInRef struct {
	WalkInID uint
}

func (WalkInRef) Type() SourceType { return SourceWalkIn }
func (r WalkInRef) ID() uint       { return r.WalkInID }
func (WalkInRef) isSource()        {}

func NewSource(kind SourceType, id uint) (Source, error) {
	switch kind {
	case SourceAppointment:
		return AppointmentRef{AppointmentID: id}, nil
	case SourceWalkIn:
		return WalkInRef{WalkInID: id}, nil
	default:
		return nil, fmt.Errorf("unknown queue source type %q", kind)
	}
}

func SourceOf(e *models.QueueEntry) (Source, error) {
	return NewSource(SourceType(e.SourceType), e.SourceID)
}
