package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

var now = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

// flakyStore fails updates to one appointment.
type flakyStore struct {
	booking.Store
	failID uint
}

func (f *flakyStore) Transaction(ctx context.Context, fn func(tx booking.Store) error) error {
	return f.Store.Transaction(ctx, func(tx booking.Store) error {
		return fn(&flakyStore{Store: tx, failID: f.failID})
	})
}

func (f *flakyStore) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if ap.ID == f.failID {
		return errors.New("disk full")
	}
	return f.Store.UpdateAppointment(ctx, ap)
}

type notes struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (n *notes) Notify(x notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, x)
}

func pending(t *testing.T, s *memstore.Store, email string, created time.Time) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		CustomerEmail: email,
		BarberID:      1,
		Date:          "2025-06-02",
		RequestedTime: "15:00",
		Status:        string(booking.StatusPendingApproval),
		CreatedAt:     created,
	}
	require.NoError(t, s.CreateAppointment(context.Background(), ap))
	return ap
}

func TestRejectStale(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	old1 := pending(t, s, "old1@x.io", now.Add(-3*time.Hour))
	old2 := pending(t, s, "old2@x.io", now.Add(-150*time.Minute))
	fresh := pending(t, s, "fresh@x.io", now.Add(-time.Hour))
	approved := &models.Appointment{
		CustomerEmail: "ok@x.io", BarberID: 1, Date: "2025-06-02", RequestedTime: "16:00",
		Status: string(booking.StatusApproved), CreatedAt: now.Add(-5 * time.Hour),
	}
	require.NoError(t, s.CreateAppointment(ctx, approved))

	n := &notes{}
	sw := New(s, nil, Config{PendingTimeLimit: 2 * time.Hour}, Options{
		Notifier: n,
		Clock:    timezone.FixedClock{T: now},
		Metrics:  metrics.New(prometheus.NewRegistry()),
		Logger:   zerolog.Nop(),
	})

	res, err := sw.RejectStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Found: 2, Rejected: 2}, res)

	for _, id := range []uint{old1.ID, old2.ID} {
		ap, err := s.GetAppointment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "rejected", ap.Status)
	}
	for _, id := range []uint{fresh.ID, approved.ID} {
		ap, err := s.GetAppointment(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, "rejected", ap.Status)
	}

	require.Len(t, n.got, 2)
	assert.Equal(t, notify.KindAutoRejected, n.got[0].Kind)
	assert.Equal(t, "old1@x.io", n.got[0].Recipient)
}

func TestRejectStaleContinuesPastFailure(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	a := pending(t, s, "a@x.io", now.Add(-3*time.Hour))
	b := pending(t, s, "b@x.io", now.Add(-3*time.Hour))
	c := pending(t, s, "c@x.io", now.Add(-3*time.Hour))

	sw := New(&flakyStore{Store: s, failID: b.ID}, nil, Config{}, Options{
		Clock:  timezone.FixedClock{T: now},
		Logger: zerolog.Nop(),
	})

	res, err := sw.RejectStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Found: 3, Rejected: 2, Failed: 1}, res)

	for id, want := range map[uint]string{a.ID: "rejected", b.ID: "pending_approval", c.ID: "rejected"} {
		ap, err := s.GetAppointment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, ap.Status)
	}
}

type fakeReconciler struct {
	calls []booking.QueueKey
	err   error
}

func (f *fakeReconciler) Reconcile(_ context.Context, barberID uint, date string) (int, error) {
	f.calls = append(f.calls, booking.QueueKey{BarberID: barberID, Date: date})
	return 1, f.err
}

func TestReconcileToday(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	for i, key := range []booking.QueueKey{{BarberID: 1, Date: "2025-06-02"}, {BarberID: 2, Date: "2025-06-02"}, {BarberID: 1, Date: "2025-06-03"}} {
		require.NoError(t, s.CreateEntry(ctx, &models.QueueEntry{
			BarberID: key.BarberID, Date: key.Date, TokenNumber: string(rune('A' + i)),
			SourceType: "walkin", SourceID: uint(i + 1), Position: 1,
		}))
	}

	rec := &fakeReconciler{}
	sw := New(s, rec, Config{}, Options{Clock: timezone.FixedClock{T: now}, Logger: zerolog.Nop()})

	n, err := sw.ReconcileToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []booking.QueueKey{{BarberID: 1, Date: "2025-06-02"}, {BarberID: 2, Date: "2025-06-02"}}, rec.calls)
}

func TestStartSchedulesJobs(t *testing.T) {
	sw := New(memstore.New(), &fakeReconciler{}, Config{Interval: time.Minute}, Options{Logger: zerolog.Nop()})
	require.NoError(t, sw.Start())
	assert.Len(t, sw.cron.Entries(), 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sw.Stop(ctx)
}

func TestJobSkipsWhenLocked(t *testing.T) {
	ran := false
	sw := New(memstore.New(), nil, Config{}, Options{Locker: deniedLocker{}, Logger: zerolog.Nop()})
	sw.job("auto-reject", time.Minute, func(context.Context) error {
		ran = true
		return nil
	})()
	assert.False(t, ran)
}

type deniedLocker struct{}

func (deniedLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, false, nil
}
