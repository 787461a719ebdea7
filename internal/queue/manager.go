// Package queue sequences service for each barber's day: it assigns queue
// positions and tokens, estimates start times, and drives the
// waiting -> ongoing -> completed lifecycle while keeping the appointment or
// walk-in record in step with its queue entry.
package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
	"github.com/BruksfildServices01/barber-queue/internal/token"
)

const DefaultTokenAttempts = 5

type Options struct {
	Allocator     PositionAllocator
	Notifier      notify.Notifier
	Clock         timezone.Clock
	Metrics       *metrics.Metrics
	Logger        zerolog.Logger
	TokenAttempts int
}

type Manager struct {
	store    booking.Store
	tokens   *token.Generator
	alloc    PositionAllocator
	notifier notify.Notifier
	clock    timezone.Clock
	metrics  *metrics.Metrics
	log      zerolog.Logger
	attempts int
}

func NewManager(store booking.Store, tokens *token.Generator, opts Options) *Manager {
	m := &Manager{
		store:    store,
		tokens:   tokens,
		alloc:    opts.Allocator,
		notifier: opts.Notifier,
		clock:    opts.Clock,
		metrics:  opts.Metrics,
		log:      opts.Logger.With().Str("component", "queue").Logger(),
		attempts: opts.TokenAttempts,
	}
	if m.alloc == nil {
		m.alloc = StoreAllocator{}
	}
	if m.notifier == nil {
		m.notifier = notify.Discard
	}
	if m.clock == nil {
		m.clock = timezone.NewShopClock(timezone.DefaultTimezone)
	}
	if m.attempts < 1 {
		m.attempts = DefaultTokenAttempts
	}
	return m
}

func (m *Manager) now() string {
	return hhmm.FromTime(m.clock.Now())
}

// ======================================================
// ENQUEUE
// ======================================================

// EnqueueAppointment puts an approved appointment in its barber's queue.
// Enqueueing the same appointment again returns the existing entry.
func (m *Manager) EnqueueAppointment(ctx context.Context, appointmentID uint) (*models.QueueEntry, error) {
	return m.enqueueSource(ctx, booking.AppointmentRef{AppointmentID: appointmentID})
}

// EnqueueWalkIn puts a waiting walk-in in its barber's queue. Enqueueing the
// same walk-in again returns the existing entry.
func (m *Manager) EnqueueWalkIn(ctx context.Context, walkInID uint) (*models.QueueEntry, error) {
	return m.enqueueSource(ctx, booking.WalkInRef{WalkInID: walkInID})
}

func (m *Manager) enqueueSource(ctx context.Context, src booking.Source) (*models.QueueEntry, error) {
	var (
		entry   *models.QueueEntry
		rec     *booking.Record
		created bool
	)
	err := m.store.Transaction(ctx, func(tx booking.Store) error {
		var err error
		if rec, err = loadRecord(ctx, tx, src); err != nil {
			return err
		}
		entry, created, err = m.enqueue(ctx, tx, rec)
		return err
	})
	m.metrics.ObserveQueueOp("enqueue", err)
	if err != nil {
		return nil, err
	}
	if created {
		m.notifier.Notify(notify.TokenAssigned(entry, recipient(rec)))
	}
	return entry, nil
}

// EnqueueWalkInTx enqueues a walk-in inside the caller's transaction. The
// token-assigned notification is sent by the caller once tx commits.
func (m *Manager) EnqueueWalkInTx(ctx context.Context, tx booking.Store, w *models.WalkIn) (*models.QueueEntry, bool, error) {
	entry, created, err := m.enqueue(ctx, tx, booking.WalkInRecord(w))
	m.metrics.ObserveQueueOp("enqueue", err)
	return entry, created, err
}

func (m *Manager) enqueue(ctx context.Context, tx booking.Store, rec *booking.Record) (*models.QueueEntry, bool, error) {
	if err := tx.LockQueue(ctx, rec.BarberID, rec.Date); err != nil {
		return nil, false, fmt.Errorf("lock queue: %w", err)
	}

	existing, err := tx.FindEntryBySource(ctx, rec.Source)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, booking.ErrNotFound) {
		return nil, false, fmt.Errorf("find queue entry: %w", err)
	}

	switch rec.Source.(type) {
	case booking.AppointmentRef:
		if rec.Status != booking.StatusApproved {
			return nil, false, booking.ErrInvalidStateTransition
		}
	case booking.WalkInRef:
		if rec.Status != booking.StatusWaiting && rec.Status != booking.StatusApproved {
			return nil, false, booking.ErrInvalidStateTransition
		}
	}

	key := booking.QueueKey{BarberID: rec.BarberID, Date: rec.Date}
	position, err := m.alloc.Next(ctx, tx, key)
	if err != nil {
		return nil, false, err
	}

	estimated, err := m.estimatedStart(ctx, tx, rec)
	if err != nil {
		return nil, false, err
	}

	entry := &models.QueueEntry{
		BarberID:           rec.BarberID,
		Date:               rec.Date,
		SourceType:         string(rec.Source.Type()),
		SourceID:           rec.Source.ID(),
		EstimatedTime:      rec.EstimatedTime,
		EstimatedStartTime: estimated,
		Position:           position,
		Status:             string(booking.StatusWaiting),
	}
	if err := m.insertWithToken(ctx, tx, entry, rec); err != nil {
		return nil, false, err
	}

	if rec.TokenNumber != entry.TokenNumber {
		rec.SetToken(entry.TokenNumber)
		if err := saveRecord(ctx, tx, rec); err != nil {
			return nil, false, err
		}
	}
	return entry, true, nil
}

// estimatedStart is the record's own start for appointments. Walk-ins start
// after every entry already in the queue, counted once at insert time.
func (m *Manager) estimatedStart(ctx context.Context, tx booking.Store, rec *booking.Record) (string, error) {
	if _, ok := rec.Source.(booking.AppointmentRef); ok {
		return rec.StartTime, nil
	}

	prior, err := tx.ListEntries(ctx, rec.BarberID, rec.Date)
	if err != nil {
		return "", fmt.Errorf("list queue: %w", err)
	}
	total := 0
	for _, e := range prior {
		total += e.EstimatedTime
	}
	return hhmm.Add(rec.StartTime, total)
}

// insertWithToken creates the entry, regenerating the token on a collision.
// Each attempt runs in its own savepoint so a failed insert leaves tx usable.
func (m *Manager) insertWithToken(ctx context.Context, tx booking.Store, entry *models.QueueEntry, rec *booking.Record) error {
	tok := rec.TokenNumber
	for attempt := 1; ; attempt++ {
		if tok == "" {
			var err error
			if tok, err = m.tokens.Generate(rec.Source.Type(), rec.Date); err != nil {
				return err
			}
		}
		entry.ID = 0
		entry.TokenNumber = tok

		err := tx.Transaction(ctx, func(sp booking.Store) error {
			return sp.CreateEntry(ctx, entry)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, booking.ErrDuplicateToken) {
			return fmt.Errorf("create queue entry: %w", err)
		}
		if attempt >= m.attempts {
			m.log.Error().
				Str("source_type", string(rec.Source.Type())).
				Uint("source_id", rec.Source.ID()).
				Int("attempts", attempt).
				Msg("token generation exhausted")
			return booking.ErrTokenGenerationFailed
		}
		m.metrics.TokenRetry()
		tok = ""
	}
}

// ======================================================
// SERVE
// ======================================================

// StartServingNext moves the lowest waiting entry to ongoing and stamps the
// source record's start with the current time.
func (m *Manager) StartServingNext(ctx context.Context, barberID uint, date string) (*models.QueueEntry, error) {
	if !hhmm.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q", booking.ErrInvalidFormat, date)
	}

	var (
		entry *models.QueueEntry
		rec   *booking.Record
	)
	err := m.store.Transaction(ctx, func(tx booking.Store) error {
		if err := tx.LockQueue(ctx, barberID, date); err != nil {
			return fmt.Errorf("lock queue: %w", err)
		}

		ongoing, err := tx.ListEntries(ctx, barberID, date, booking.StatusOngoing)
		if err != nil {
			return fmt.Errorf("list ongoing: %w", err)
		}
		if len(ongoing) > 0 {
			return booking.ErrAlreadyServing
		}

		waiting, err := tx.ListEntries(ctx, barberID, date, booking.StatusWaiting)
		if err != nil {
			return fmt.Errorf("list waiting: %w", err)
		}
		if len(waiting) == 0 {
			return booking.ErrQueueEmpty
		}

		entry = &waiting[0]
		src, err := booking.SourceOf(entry)
		if err != nil {
			return err
		}
		if rec, err = loadRecord(ctx, tx, src); err != nil {
			return err
		}

		entry.Status = string(booking.StatusOngoing)
		if err := tx.UpdateEntry(ctx, entry); err != nil {
			return fmt.Errorf("update queue entry: %w", err)
		}

		rec.SetStatus(booking.StatusOngoing)
		rec.StampStart(m.now())
		return saveRecord(ctx, tx, rec)
	})
	m.metrics.ObserveQueueOp("start_next", err)
	if err != nil {
		return nil, err
	}

	m.notifyStatus(rec)
	return entry, nil
}

// CompleteService finishes an ongoing entry, stamps the source record's end
// and re-estimates everyone still waiting.
func (m *Manager) CompleteService(ctx context.Context, entryID uint) (*models.QueueEntry, error) {
	var (
		entry *models.QueueEntry
		rec   *booking.Record
	)
	err := m.store.Transaction(ctx, func(tx booking.Store) error {
		found, err := tx.GetEntry(ctx, entryID)
		if err != nil {
			return err
		}
		if err := tx.LockQueue(ctx, found.BarberID, found.Date); err != nil {
			return fmt.Errorf("lock queue: %w", err)
		}
		// Re-read under the lock.
		if entry, err = tx.GetEntry(ctx, entryID); err != nil {
			return err
		}
		if entry.Status != string(booking.StatusOngoing) {
			return booking.ErrNotOngoing
		}

		src, err := booking.SourceOf(entry)
		if err != nil {
			return err
		}
		if rec, err = loadRecord(ctx, tx, src); err != nil {
			return err
		}

		entry.Status = string(booking.StatusCompleted)
		if err := tx.UpdateEntry(ctx, entry); err != nil {
			return fmt.Errorf("update queue entry: %w", err)
		}

		rec.SetStatus(booking.StatusCompleted)
		rec.StampEnd(m.now())
		return saveRecord(ctx, tx, rec)
	})
	m.metrics.ObserveQueueOp("complete", err)
	if err != nil {
		return nil, err
	}

	m.notifyStatus(rec)
	if _, err := m.RecalculateWaitTimes(ctx, entry.BarberID, entry.Date); err != nil {
		m.log.Error().Err(err).
			Uint("barber_id", entry.BarberID).
			Str("date", entry.Date).
			Msg("recalculate wait times after completion")
	}
	return entry, nil
}

// CompleteCurrent completes whichever entry the barber is serving.
func (m *Manager) CompleteCurrent(ctx context.Context, barberID uint, date string) (*models.QueueEntry, error) {
	if !hhmm.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q", booking.ErrInvalidFormat, date)
	}
	ongoing, err := m.store.ListEntries(ctx, barberID, date, booking.StatusOngoing)
	if err != nil {
		return nil, fmt.Errorf("list ongoing: %w", err)
	}
	if len(ongoing) == 0 {
		return nil, booking.ErrNotOngoing
	}
	return m.CompleteService(ctx, ongoing[0].ID)
}

// RecalculateWaitTimes re-estimates every waiting entry from the current
// time, in position order.
func (m *Manager) RecalculateWaitTimes(ctx context.Context, barberID uint, date string) ([]models.QueueEntry, error) {
	var waiting []models.QueueEntry
	err := m.store.Transaction(ctx, func(tx booking.Store) error {
		if err := tx.LockQueue(ctx, barberID, date); err != nil {
			return fmt.Errorf("lock queue: %w", err)
		}

		var err error
		if waiting, err = tx.ListEntries(ctx, barberID, date, booking.StatusWaiting); err != nil {
			return fmt.Errorf("list waiting: %w", err)
		}

		cursor := m.now()
		for i := range waiting {
			waiting[i].EstimatedStartTime = cursor
			if err := tx.UpdateEntry(ctx, &waiting[i]); err != nil {
				return fmt.Errorf("update queue entry: %w", err)
			}
			if cursor, err = hhmm.Add(cursor, waiting[i].EstimatedTime); err != nil {
				return err
			}
		}
		return nil
	})
	m.metrics.ObserveQueueOp("recalculate", err)
	if err != nil {
		return nil, err
	}
	return waiting, nil
}

// ======================================================
// HELPERS
// ======================================================

func loadRecord(ctx context.Context, tx booking.Store, src booking.Source) (*booking.Record, error) {
	switch s := src.(type) {
	case booking.AppointmentRef:
		ap, err := tx.GetAppointment(ctx, s.AppointmentID)
		if err != nil {
			return nil, err
		}
		return booking.AppointmentRecord(ap), nil
	case booking.WalkInRef:
		w, err := tx.GetWalkIn(ctx, s.WalkInID)
		if err != nil {
			return nil, err
		}
		return booking.WalkInRecord(w), nil
	default:
		return nil, fmt.Errorf("unknown queue source %T", src)
	}
}

func saveRecord(ctx context.Context, tx booking.Store, rec *booking.Record) error {
	switch rec.Source.(type) {
	case booking.AppointmentRef:
		if err := tx.UpdateAppointment(ctx, rec.Appointment); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
	case booking.WalkInRef:
		if err := tx.UpdateWalkIn(ctx, rec.WalkIn); err != nil {
			return fmt.Errorf("update walk-in: %w", err)
		}
	}
	return nil
}

func recipient(rec *booking.Record) string {
	switch {
	case rec.Appointment != nil:
		return rec.Appointment.CustomerEmail
	case rec.WalkIn != nil:
		return rec.WalkIn.CustomerEmail
	}
	return ""
}

func (m *Manager) notifyStatus(rec *booking.Record) {
	if rec != nil && rec.Appointment != nil {
		m.notifier.Notify(notify.AppointmentStatusChanged(rec.Appointment))
	}
}
