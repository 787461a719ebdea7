package dto

import (
	"sort"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type AppointmentListDTO struct {
	ID            uint   `json:"id"`
	Date          string `json:"date"`
	RequestedTime string `json:"requested_time"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Service       string `json:"service"`
	TokenNumber   string `json:"token_number,omitempty"`
}

func AppointmentFrom(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:            ap.ID,
		Date:          ap.Date,
		RequestedTime: ap.RequestedTime,
		StartTime:     ap.StartTime,
		EndTime:       ap.EndTime,
		Status:        ap.Status,
		CustomerName:  ap.CustomerName,
		CustomerEmail: ap.CustomerEmail,
		Service:       ap.Service,
		TokenNumber:   ap.TokenNumber,
	}
}

// SortAppointments orders by date, then requested time, then id.
func SortAppointments(list []AppointmentListDTO) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.RequestedTime != b.RequestedTime {
			return a.RequestedTime < b.RequestedTime
		}
		return a.ID < b.ID
	})
}
