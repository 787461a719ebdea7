package booking

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
)

// CancelPending deletes an appointment that has not been decided yet.
type CancelPending struct {
	store domain.Store
	log   zerolog.Logger
}

func NewCancelPending(store domain.Store, log zerolog.Logger) *CancelPending {
	return &CancelPending{store: store, log: log}
}

// Execute deletes the appointment. barberID 0 skips the ownership check.
func (uc *CancelPending) Execute(
	ctx context.Context,
	barberID uint,
	appointmentID uint,
) error {

	err := uc.store.Transaction(ctx, func(tx domain.Store) error {
		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if barberID != 0 && ap.BarberID != barberID {
			return domain.ErrNotFound
		}
		if ap.Status != string(domain.StatusPendingApproval) {
			return domain.ErrInvalidStateTransition
		}
		return tx.DeleteAppointment(ctx, appointmentID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Uint("appointment_id", appointmentID).Msg("pending appointment cancelled")
	return nil
}
