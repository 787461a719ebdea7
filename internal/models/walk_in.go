package models

import "time"

// WalkIn is created already bound to a computed slot.
type WalkIn struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	BarberID uint `gorm:"index:idx_walkin_barber_date" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date          string `gorm:"size:10;not null;index:idx_walkin_barber_date" json:"date"`
	ArrivalTime   string `gorm:"size:5;not null" json:"arrival_time"`
	StartTime     string `gorm:"size:5" json:"start_time"`
	EndTime       string `gorm:"size:5" json:"end_time"`
	EstimatedTime int    `json:"estimated_time"`

	Service string `gorm:"size:50;not null" json:"service"`
	Status  string `gorm:"size:20;default:'waiting'" json:"status"`

	TokenNumber string `gorm:"size:32" json:"token_number"`
	Notes       string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WalkIn) TableName() string {
	return "walk_ins"
}
