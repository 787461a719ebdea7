package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Kind      string `gorm:"size:50;not null;index" json:"kind"`
	BarberID  uint   `gorm:"index" json:"barber_id"`
	Recipient string `gorm:"size:100" json:"recipient"`
	Title     string `gorm:"size:100" json:"title"`
	Message   string `gorm:"type:text" json:"message"`
	Data      string `gorm:"type:text" json:"data"`

	CreatedAt time.Time `json:"created_at"`
}
