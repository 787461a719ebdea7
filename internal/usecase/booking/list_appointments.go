package booking

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
)

type ListAppointments struct {
	repo domain.AvailabilityReader
}

func NewListAppointments(repo domain.AvailabilityReader) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists a barber's appointments, optionally for one date and
// statuses, ordered by date then requested time.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	barberID uint,
	date string,
	statuses ...domain.Status,
) ([]dto.AppointmentListDTO, error) {

	if date != "" && !hhmm.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q, want YYYY-MM-DD", domain.ErrInvalidFormat, date)
	}

	appointments, err := uc.repo.ListAppointments(ctx, domain.AppointmentFilter{
		BarberID: barberID,
		Date:     date,
		Statuses: statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentFrom(ap))
	}
	dto.SortAppointments(out)
	return out, nil
}
