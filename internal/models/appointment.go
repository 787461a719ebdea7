package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// CustomerID is nil for guest bookings; the snapshot fields below are
	// always filled.
	CustomerID    *uint  `json:"customer_id"`
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;not null;uniqueIndex:idx_appointment_customer_slot" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	BarberID uint `gorm:"index:idx_appointment_barber_date" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date          string `gorm:"size:10;not null;index:idx_appointment_barber_date;uniqueIndex:idx_appointment_customer_slot" json:"date"`
	RequestedTime string `gorm:"size:5;not null;uniqueIndex:idx_appointment_customer_slot" json:"requested_time"`
	StartTime     string `gorm:"size:5" json:"start_time"`
	EndTime       string `gorm:"size:5" json:"end_time"`
	EstimatedTime int    `json:"estimated_time"`

	Service string `gorm:"size:50;not null" json:"service"`
	Status  string `gorm:"size:20;default:'pending_approval';index" json:"status"`

	TokenNumber string `gorm:"size:32" json:"token_number"`
	Notes       string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
