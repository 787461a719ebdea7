package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// LogSender writes notifications to the structured log. It stands in for
// email and SMS delivery.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n Notification) error {
	s.log.Info().
		Str("kind", string(n.Kind)).
		Uint("barber_id", n.BarberID).
		Str("recipient", n.Recipient).
		Str("title", n.Title).
		Interface("data", n.Data).
		Msg(n.Message)
	return nil
}

// StoreSender persists notifications in the notifications table.
type StoreSender struct {
	db *gorm.DB
}

func NewStoreSender(db *gorm.DB) *StoreSender {
	return &StoreSender{db: db}
}

func (s *StoreSender) Send(ctx context.Context, n Notification) error {
	var data string
	if n.Data != nil {
		if b, err := json.Marshal(n.Data); err == nil {
			data = string(b)
		}
	}

	row := models.Notification{
		Kind:      string(n.Kind),
		BarberID:  n.BarberID,
		Recipient: n.Recipient,
		Title:     n.Title,
		Message:   n.Message,
		Data:      data,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}
