package schedule

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

type BlockedSlotInput struct {
	BarberID  uint
	Date      string
	StartTime string
	EndTime   string
	Reason    string
}

type BlockedSlots struct {
	store domain.Store
	max   int
	clock timezone.Clock
	log   zerolog.Logger
}

func NewBlockedSlots(store domain.Store, maxEntries int, clock timezone.Clock, log zerolog.Logger) *BlockedSlots {
	return &BlockedSlots{
		store: store,
		max:   normalizeMax(maxEntries),
		clock: clockOrDefault(clock),
		log:   log,
	}
}

// Create blocks a range. The same range twice fails with ErrAlreadyExists;
// at the cap it fails with ErrScheduleLimitReached.
func (uc *BlockedSlots) Create(ctx context.Context, in BlockedSlotInput) (*models.BlockedSlot, error) {
	bs, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}

	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		exists, err := tx.ExistsBlockedSlot(ctx, in.BarberID, in.Date, in.StartTime, in.EndTime)
		if err != nil {
			return fmt.Errorf("check blocked slot: %w", err)
		}
		if exists {
			return domain.ErrAlreadyExists
		}
		n, err := tx.CountBlockedSlots(ctx, in.BarberID, today(uc.clock))
		if err != nil {
			return fmt.Errorf("count blocked slots: %w", err)
		}
		if n >= int64(uc.max) {
			return domain.ErrScheduleLimitReached
		}
		return tx.CreateBlockedSlot(ctx, bs)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Uint("barber_id", bs.BarberID).
		Str("date", bs.Date).
		Str("start", bs.StartTime).
		Str("end", bs.EndTime).
		Msg("slot blocked")
	return bs, nil
}

// Replace clears the barber's blocked slots and creates the new one.
func (uc *BlockedSlots) Replace(ctx context.Context, in BlockedSlotInput) (*models.BlockedSlot, error) {
	bs, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}

	err = uc.store.Transaction(ctx, func(tx domain.Store) error {
		if err := tx.DeleteAllBlockedSlots(ctx, in.BarberID); err != nil {
			return fmt.Errorf("clear blocked slots: %w", err)
		}
		return tx.CreateBlockedSlot(ctx, bs)
	})
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (uc *BlockedSlots) Update(ctx context.Context, id uint, in BlockedSlotInput) (*models.BlockedSlot, error) {
	bs, err := uc.owned(ctx, in.BarberID, id)
	if err != nil {
		return nil, err
	}

	if in.Date != "" {
		bs.Date = in.Date
	}
	if in.StartTime != "" {
		bs.StartTime = in.StartTime
	}
	if in.EndTime != "" {
		bs.EndTime = in.EndTime
	}
	if in.Reason != "" {
		bs.Reason = in.Reason
	}
	if err := validRange(bs.Date, bs.StartTime, bs.EndTime); err != nil {
		return nil, err
	}

	if err := uc.store.UpdateBlockedSlot(ctx, bs); err != nil {
		return nil, err
	}
	return bs, nil
}

func (uc *BlockedSlots) Get(ctx context.Context, barberID, id uint) (*models.BlockedSlot, error) {
	return uc.owned(ctx, barberID, id)
}

func (uc *BlockedSlots) Delete(ctx context.Context, barberID, id uint) error {
	if _, err := uc.owned(ctx, barberID, id); err != nil {
		return err
	}
	return uc.store.DeleteBlockedSlot(ctx, id)
}

// List returns the barber's blocked slots, only those on date when given.
func (uc *BlockedSlots) List(ctx context.Context, barberID uint, date string) ([]models.BlockedSlot, error) {
	if date != "" {
		return uc.store.ListBlockedSlots(ctx, barberID, date)
	}
	return uc.store.ListBlockedSlotsForBarber(ctx, barberID)
}

func (uc *BlockedSlots) Count(ctx context.Context, barberID uint) (Count, error) {
	n, err := uc.store.CountBlockedSlots(ctx, barberID, today(uc.clock))
	if err != nil {
		return Count{}, err
	}
	return Count{Count: n, LimitReached: n >= int64(uc.max)}, nil
}

func (uc *BlockedSlots) build(ctx context.Context, in BlockedSlotInput) (*models.BlockedSlot, error) {
	if err := validRange(in.Date, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	if err := checkBarber(ctx, uc.store, in.BarberID); err != nil {
		return nil, err
	}
	return &models.BlockedSlot{
		BarberID:  in.BarberID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Reason:    in.Reason,
	}, nil
}

func (uc *BlockedSlots) owned(ctx context.Context, barberID, id uint) (*models.BlockedSlot, error) {
	bs, err := uc.store.GetBlockedSlot(ctx, id)
	if err != nil {
		return nil, err
	}
	if barberID != 0 && bs.BarberID != barberID {
		return nil, domain.ErrNotFound
	}
	return bs, nil
}
