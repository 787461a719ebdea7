// Package sweeper runs the periodic maintenance jobs: rejecting appointments
// left pending too long and reconciling today's queues.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

const (
	DefaultPendingTimeLimit  = 2 * time.Hour
	DefaultInterval          = 15 * time.Minute
	DefaultReconcileInterval = time.Hour
)

type Config struct {
	PendingTimeLimit  time.Duration
	Interval          time.Duration
	ReconcileInterval time.Duration
}

// Reconciler repairs one queue. Implemented by queue.Manager.
type Reconciler interface {
	Reconcile(ctx context.Context, barberID uint, date string) (int, error)
}

type Options struct {
	Notifier notify.Notifier
	Clock    timezone.Clock
	Locker   Locker
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
}

type Sweeper struct {
	store      booking.Store
	reconciler Reconciler
	cfg        Config
	notifier   notify.Notifier
	clock      timezone.Clock
	locker     Locker
	metrics    *metrics.Metrics
	log        zerolog.Logger
	cron       *cron.Cron
}

func New(store booking.Store, reconciler Reconciler, cfg Config, opts Options) *Sweeper {
	if cfg.PendingTimeLimit <= 0 {
		cfg.PendingTimeLimit = DefaultPendingTimeLimit
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = DefaultReconcileInterval
	}
	s := &Sweeper{
		store:      store,
		reconciler: reconciler,
		cfg:        cfg,
		notifier:   opts.Notifier,
		clock:      opts.Clock,
		locker:     opts.Locker,
		metrics:    opts.Metrics,
		log:        opts.Logger.With().Str("component", "sweeper").Logger(),
	}
	if s.notifier == nil {
		s.notifier = notify.Discard
	}
	if s.clock == nil {
		s.clock = timezone.NewShopClock(timezone.DefaultTimezone)
	}
	if s.locker == nil {
		s.locker = NoopLocker{}
	}
	return s
}

// Result summarizes one RejectStale run.
type Result struct {
	Found    int
	Rejected int
	Failed   int
}

var errNoLongerPending = errors.New("appointment no longer pending")

// RejectStale rejects every appointment still pending approval after the
// configured limit. Each appointment is handled on its own; a failure is
// logged and counted and the sweep moves on.
func (s *Sweeper) RejectStale(ctx context.Context) (Result, error) {
	cutoff := s.clock.Now().Add(-s.cfg.PendingTimeLimit)

	stale, err := s.store.ListAppointments(ctx, booking.AppointmentFilter{
		Statuses:      []booking.Status{booking.StatusPendingApproval},
		CreatedBefore: cutoff,
	})
	if err != nil {
		return Result{}, fmt.Errorf("list stale appointments: %w", err)
	}

	res := Result{Found: len(stale)}
	for _, ap := range stale {
		rejected, err := s.rejectOne(ctx, ap.ID)
		switch {
		case errors.Is(err, errNoLongerPending):
			continue
		case err != nil:
			res.Failed++
			s.metrics.ObserveSweep(false)
			s.log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("auto-reject failed")
			continue
		}
		res.Rejected++
		s.metrics.ObserveSweep(true)
		s.notifier.Notify(notify.AutoRejected(rejected))
	}

	s.log.Info().
		Int("found", res.Found).
		Int("rejected", res.Rejected).
		Int("failed", res.Failed).
		Msg("auto-rejection sweep finished")
	return res, nil
}

func (s *Sweeper) rejectOne(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap *models.Appointment
	err := s.store.Transaction(ctx, func(tx booking.Store) error {
		var err error
		if ap, err = tx.GetAppointment(ctx, id); err != nil {
			return err
		}
		// Approved or rejected since the listing.
		if ap.Status != string(booking.StatusPendingApproval) {
			return errNoLongerPending
		}
		ap.Status = string(booking.StatusRejected)
		return tx.UpdateAppointment(ctx, ap)
	})
	return ap, err
}

// ReconcileToday repairs every queue with entries for the current day and
// returns the number of repaired entries.
func (s *Sweeper) ReconcileToday(ctx context.Context) (int, error) {
	if s.reconciler == nil {
		return 0, nil
	}
	date := hhmm.DateOf(s.clock.Now())
	keys, err := s.store.ListQueueKeys(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("list queues: %w", err)
	}

	total := 0
	for _, k := range keys {
		n, err := s.reconciler.Reconcile(ctx, k.BarberID, k.Date)
		if err != nil {
			s.log.Error().Err(err).Uint("barber_id", k.BarberID).Str("date", k.Date).Msg("reconcile failed")
			continue
		}
		total += n
	}
	return total, nil
}

// ======================================================
// SCHEDULING
// ======================================================

// Start schedules both jobs and starts the cron runner.
func (s *Sweeper) Start() error {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc(every(s.cfg.Interval), s.job("auto-reject", s.cfg.Interval, func(ctx context.Context) error {
		_, err := s.RejectStale(ctx)
		return err
	})); err != nil {
		return fmt.Errorf("schedule auto-reject: %w", err)
	}

	if s.reconciler != nil {
		if _, err := s.cron.AddFunc(every(s.cfg.ReconcileInterval), s.job("reconcile", s.cfg.ReconcileInterval, func(ctx context.Context) error {
			_, err := s.ReconcileToday(ctx)
			return err
		})); err != nil {
			return fmt.Errorf("schedule reconcile: %w", err)
		}
	}

	s.cron.Start()
	s.log.Info().
		Dur("interval", s.cfg.Interval).
		Dur("pending_limit", s.cfg.PendingTimeLimit).
		Msg("sweeper started")
	return nil
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Sweeper) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Sweeper) job(name string, ttl time.Duration, run func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), ttl)
		defer cancel()

		release, ok, err := s.locker.TryLock(ctx, "sweeper:"+name, ttl)
		if err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("sweeper lock failed")
			return
		}
		if !ok {
			s.log.Debug().Str("job", name).Msg("another replica holds the sweeper lock")
			return
		}
		defer release()

		if err := run(ctx); err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("sweeper job failed")
		}
	}
}

func every(d time.Duration) string {
	return "@every " + d.String()
}
