package models

import "time"

// QueueEntry is one position in a barber's queue for a day. SourceType and
// SourceID point at the appointment or walk-in being served.
type QueueEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"not null;index:idx_queue_barber_date_pos" json:"barber_id"`
	Date     string `gorm:"size:10;not null;index:idx_queue_barber_date_pos" json:"date"`

	TokenNumber string `gorm:"size:32;not null;uniqueIndex" json:"token_number"`

	SourceType string `gorm:"size:20;not null;uniqueIndex:idx_queue_source" json:"source_type"`
	SourceID   uint   `gorm:"not null;uniqueIndex:idx_queue_source" json:"source_id"`

	EstimatedTime      int    `json:"estimated_time"`
	EstimatedStartTime string `gorm:"size:5" json:"estimated_start_time"`
	Position           int    `gorm:"not null;index:idx_queue_barber_date_pos" json:"position"`

	Status string `gorm:"size:20;default:'waiting';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QueueEntry) TableName() string {
	return "waiting_queue"
}
