package models

import "time"

type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"not null;uniqueIndex:idx_working_hours_barber_date" json:"barber_id"`

	Date string `gorm:"size:10;not null;uniqueIndex:idx_working_hours_barber_date" json:"date"`

	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	IsAvailable bool   `gorm:"not null" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
