package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/availability"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/queue"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
	"github.com/BruksfildServices01/barber-queue/internal/token"
)

const day = "2025-06-02"

type recorder struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recorder) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Kind, len(r.got))
	for i, n := range r.got {
		out[i] = n.Kind
	}
	return out
}

type fixture struct {
	store    *memstore.Store
	cfg      config.BookingConfig
	resolver *availability.Resolver
	manager  *queue.Manager
	notes    *recorder
	barberID uint
}

func newFixture(t *testing.T, buffer int) *fixture {
	t.Helper()
	s := memstore.New()
	barber := s.PutUser(models.User{Name: "Bob", Email: "bob@shop.io", Role: models.RoleBarber})
	require.NoError(t, s.CreateWorkingHours(context.Background(), &models.WorkingHours{
		BarberID: barber.ID, Date: day, StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
	}))

	cfg := config.Default().Booking
	cfg.BufferMinutes = buffer

	notes := &recorder{}
	calc := availability.NewCalculator(s, buffer, zerolog.Nop())
	manager := queue.NewManager(s, token.NewGenerator(token.Config{
		AppointmentPrefix: "APPT", WalkInPrefix: "WALKIN", Delimiter: "-",
	}), queue.Options{
		Notifier: notes,
		Clock:    timezone.FixedClock{T: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)},
		Logger:   zerolog.Nop(),
	})

	return &fixture{
		store:    s,
		cfg:      cfg,
		resolver: availability.NewResolver(calc, nil),
		manager:  manager,
		notes:    notes,
		barberID: barber.ID,
	}
}

func (f *fixture) createAppointment() *CreateAppointment {
	return NewCreateAppointment(f.store, f.resolver, f.cfg, zerolog.Nop())
}

func (f *fixture) book(t *testing.T, email, at, service string) *models.Appointment {
	t.Helper()
	ap, err := f.createAppointment().Execute(context.Background(), CreateAppointmentInput{
		BarberID:      f.barberID,
		CustomerName:  "Ann",
		CustomerEmail: email,
		Date:          day,
		RequestedTime: at,
		Service:       service,
	})
	require.NoError(t, err)
	return ap
}
