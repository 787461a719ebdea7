package dto

import "github.com/BruksfildServices01/barber-queue/internal/models"

// QueueItemDTO flattens a queue entry with the customer and service of its
// source record.
type QueueItemDTO struct {
	ID                 uint   `json:"id"`
	TokenNumber        string `json:"token_number"`
	Position           int    `json:"position"`
	Status             string `json:"status"`
	SourceType         string `json:"source_type"`
	SourceID           uint   `json:"source_id"`
	EstimatedTime      int    `json:"estimated_time"`
	EstimatedStartTime string `json:"estimated_start_time"`
	CustomerName       string `json:"customer_name,omitempty"`
	Service            string `json:"service,omitempty"`
}

func QueueItem(e models.QueueEntry, ap *models.Appointment, w *models.WalkIn) QueueItemDTO {
	out := QueueItemDTO{
		ID:                 e.ID,
		TokenNumber:        e.TokenNumber,
		Position:           e.Position,
		Status:             e.Status,
		SourceType:         e.SourceType,
		SourceID:           e.SourceID,
		EstimatedTime:      e.EstimatedTime,
		EstimatedStartTime: e.EstimatedStartTime,
	}
	switch {
	case ap != nil:
		out.CustomerName = ap.CustomerName
		out.Service = ap.Service
	case w != nil:
		out.CustomerName = w.CustomerName
		out.Service = w.Service
	}
	return out
}
