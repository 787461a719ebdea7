package models

import "time"

type BlockedSlot struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"not null;index:idx_blocked_barber_date" json:"barber_id"`

	Date      string `gorm:"size:10;not null;index:idx_blocked_barber_date" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
