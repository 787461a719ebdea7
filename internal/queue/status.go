package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
)

// ======================================================
// STATUS
// ======================================================

// SetAppointmentStatus approves, rejects or marks an appointment as a
// no-show. Approval enqueues the appointment; other changes are mirrored
// onto its queue entry, if any, in the same transaction.
func (m *Manager) SetAppointmentStatus(ctx context.Context, appointmentID uint, to booking.Status) (*models.Appointment, error) {
	res, err := m.setStatus(ctx, func(tx booking.Store) (*booking.Record, error) {
		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		return booking.AppointmentRecord(ap), nil
	}, to)
	if err != nil {
		return nil, err
	}
	return res.Appointment, nil
}

// SetWalkInStatus rejects a walk-in or marks it as a no-show.
func (m *Manager) SetWalkInStatus(ctx context.Context, walkInID uint, to booking.Status) (*models.WalkIn, error) {
	res, err := m.setStatus(ctx, func(tx booking.Store) (*booking.Record, error) {
		w, err := tx.GetWalkIn(ctx, walkInID)
		if err != nil {
			return nil, err
		}
		return booking.WalkInRecord(w), nil
	}, to)
	if err != nil {
		return nil, err
	}
	return res.WalkIn, nil
}

// SetEntryStatus applies a status change through a queue entry; the source
// record follows.
func (m *Manager) SetEntryStatus(ctx context.Context, entryID uint, to booking.Status) (*models.QueueEntry, error) {
	res, err := m.setStatus(ctx, func(tx booking.Store) (*booking.Record, error) {
		e, err := tx.GetEntry(ctx, entryID)
		if err != nil {
			return nil, err
		}
		src, err := booking.SourceOf(e)
		if err != nil {
			return nil, err
		}
		return loadRecord(ctx, tx, src)
	}, to)
	if err != nil {
		return nil, err
	}
	return res.entry, nil
}

type statusResult struct {
	*booking.Record
	entry   *models.QueueEntry
	created bool
}

func (m *Manager) setStatus(ctx context.Context, load func(tx booking.Store) (*booking.Record, error), to booking.Status) (*statusResult, error) {
	if !booking.ManualTarget(to) {
		return nil, booking.ErrInvalidStateTransition
	}

	var res statusResult
	err := m.store.Transaction(ctx, func(tx booking.Store) error {
		rec, err := load(tx)
		if err != nil {
			return err
		}
		res.Record = rec

		if !booking.CanTransition(rec.Source.Type(), rec.Status, to) {
			return booking.ErrInvalidStateTransition
		}

		if to == booking.StatusApproved {
			if err := booking.Approve(rec.Appointment); err != nil {
				return err
			}
			res.Record = booking.AppointmentRecord(rec.Appointment)
			if err := saveRecord(ctx, tx, res.Record); err != nil {
				return err
			}
			res.entry, res.created, err = m.enqueue(ctx, tx, res.Record)
			return err
		}

		rec.SetStatus(to)
		if err := saveRecord(ctx, tx, rec); err != nil {
			return err
		}
		res.entry, err = mirror(ctx, tx, rec)
		return err
	})
	m.metrics.ObserveQueueOp("set_status", err)
	if err != nil {
		return nil, err
	}

	m.notifyStatus(res.Record)
	if res.created {
		m.notifier.Notify(notify.TokenAssigned(res.entry, recipient(res.Record)))
	}
	return &res, nil
}

// mirror copies the record's status onto its queue entry. Records that were
// never queued have nothing to mirror.
func mirror(ctx context.Context, tx booking.Store, rec *booking.Record) (*models.QueueEntry, error) {
	if err := tx.LockQueue(ctx, rec.BarberID, rec.Date); err != nil {
		return nil, fmt.Errorf("lock queue: %w", err)
	}
	entry, err := tx.FindEntryBySource(ctx, rec.Source)
	if errors.Is(err, booking.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find queue entry: %w", err)
	}

	want := string(booking.EntryStatusFor(rec.Status))
	if entry.Status == want {
		return entry, nil
	}
	entry.Status = want
	if err := tx.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("update queue entry: %w", err)
	}
	return entry, nil
}

// ======================================================
// REPAIR
// ======================================================

// Reconcile re-derives each queue entry's status from its source record and
// backfills missing source tokens. It returns the number of entries that
// needed repair.
func (m *Manager) Reconcile(ctx context.Context, barberID uint, date string) (int, error) {
	repaired := 0
	err := m.store.Transaction(ctx, func(tx booking.Store) error {
		if err := tx.LockQueue(ctx, barberID, date); err != nil {
			return fmt.Errorf("lock queue: %w", err)
		}
		entries, err := tx.ListEntries(ctx, barberID, date)
		if err != nil {
			return fmt.Errorf("list queue: %w", err)
		}

		for i := range entries {
			e := &entries[i]
			src, err := booking.SourceOf(e)
			if err != nil {
				return err
			}
			rec, err := loadRecord(ctx, tx, src)
			if errors.Is(err, booking.ErrNotFound) {
				m.log.Warn().Uint("entry_id", e.ID).Str("source_type", e.SourceType).
					Uint("source_id", e.SourceID).Msg("queue entry source missing")
				continue
			}
			if err != nil {
				return err
			}

			fixed := false
			if want := string(booking.EntryStatusFor(rec.Status)); e.Status != want {
				e.Status = want
				if err := tx.UpdateEntry(ctx, e); err != nil {
					return fmt.Errorf("update queue entry: %w", err)
				}
				fixed = true
			}
			if rec.TokenNumber != e.TokenNumber {
				rec.SetToken(e.TokenNumber)
				if err := saveRecord(ctx, tx, rec); err != nil {
					return err
				}
				fixed = true
			}
			if fixed {
				repaired++
			}
		}
		return nil
	})
	m.metrics.ObserveQueueOp("reconcile", err)
	if err != nil {
		return 0, err
	}
	if repaired > 0 {
		m.log.Info().Uint("barber_id", barberID).Str("date", date).Int("repaired", repaired).Msg("queue reconciled")
	}
	return repaired, nil
}

// ======================================================
// VIEWS
// ======================================================

// Item is a queue entry with its source record resolved.
type Item struct {
	Entry       models.QueueEntry   `json:"entry"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
	WalkIn      *models.WalkIn      `json:"walk_in,omitempty"`
}

// Snapshot lists a queue in position order. No statuses means all entries.
func (m *Manager) Snapshot(ctx context.Context, barberID uint, date string, statuses ...booking.Status) ([]Item, error) {
	entries, err := m.store.ListEntries(ctx, barberID, date, statuses...)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		item := Item{Entry: e}
		src, err := booking.SourceOf(&e)
		if err != nil {
			return nil, err
		}
		switch s := src.(type) {
		case booking.AppointmentRef:
			item.Appointment, err = m.store.GetAppointment(ctx, s.AppointmentID)
		case booking.WalkInRef:
			item.WalkIn, err = m.store.GetWalkIn(ctx, s.WalkInID)
		}
		if err != nil && !errors.Is(err, booking.ErrNotFound) {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
