package booking

import (
	"context"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
)

func TestEndToEndAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	ap := f.book(t, "ann@x.io", "09:00", "Haircut")
	assert.Equal(t, "pending_approval", ap.Status)
	assert.Equal(t, "09:00", ap.StartTime)
	assert.Equal(t, "09:30", ap.EndTime)
	assert.Equal(t, 30, ap.EstimatedTime)

	status := NewUpdateStatus(f.store, f.manager)
	approved, err := status.Appointment(ctx, f.barberID, ap.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	entry, err := f.store.FindEntryBySource(ctx, domain.AppointmentRef{AppointmentID: ap.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Position)
	assert.Regexp(t, regexp.MustCompile(`^APPT-20250602-[0-9A-F]{4}$`), entry.TokenNumber)

	serving, err := f.manager.StartServingNext(ctx, f.barberID, day)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, serving.ID)
	assert.Equal(t, "ongoing", serving.Status)

	got, err := f.store.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "ongoing", got.Status)

	done, err := f.manager.CompleteService(ctx, serving.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)

	got, err = f.store.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
}

func TestEndToEndDefaultBuffer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.Default().Booking.BufferMinutes)

	check, err := NewCheckAvailability(f.store, f.resolver, f.cfg).Execute(ctx, CheckAvailabilityInput{
		BarberID: f.barberID, Date: day, RequestedTime: "09:00", Service: "haircut",
	})
	require.NoError(t, err)
	assert.False(t, check.Available)
	assert.Equal(t, domain.TimeSlot{Start: "09:05", End: "09:35"}, check.Slot)

	_, err = f.createAppointment().Execute(ctx, CreateAppointmentInput{
		BarberID: f.barberID, CustomerEmail: "ann@x.io", Date: day, RequestedTime: "09:00", Service: "haircut",
	})
	var unavailable *domain.SlotUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, domain.TimeSlot{Start: "09:05", End: "09:35"}, unavailable.Suggested)

	ap := f.book(t, "ann@x.io", unavailable.Suggested.Start, "haircut")
	assert.Equal(t, "09:05", ap.StartTime)
	assert.Equal(t, "09:35", ap.EndTime)

	_, err = NewUpdateStatus(f.store, f.manager).Appointment(ctx, f.barberID, ap.ID, domain.StatusApproved)
	require.NoError(t, err)
	entry, err := f.store.FindEntryBySource(ctx, domain.AppointmentRef{AppointmentID: ap.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Position)
}

func TestCreateAppointmentSuggestsNextSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)

	// The buffer keeps the first five minutes of the day free.
	_, err := f.createAppointment().Execute(ctx, CreateAppointmentInput{
		BarberID: f.barberID, CustomerEmail: "ann@x.io", Date: day, RequestedTime: "09:00", Service: "haircut",
	})
	var unavailable *domain.SlotUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	assert.Equal(t, domain.TimeSlot{Start: "09:05", End: "09:35"}, unavailable.Suggested)

	f.book(t, "ann@x.io", "09:05", "haircut")

	// 09:05-09:35 is busy now; the next gap starts at 09:40.
	_, err = f.createAppointment().Execute(ctx, CreateAppointmentInput{
		BarberID: f.barberID, CustomerEmail: "bea@x.io", Date: day, RequestedTime: "09:10", Service: "haircut",
	})
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, domain.TimeSlot{Start: "09:40", End: "10:10"}, unavailable.Suggested)
}

func TestCreateAppointmentNoSlotLeft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	require.NoError(t, f.store.CreateBlockedSlot(ctx, &models.BlockedSlot{
		BarberID: f.barberID, Date: day, StartTime: "10:00", EndTime: "17:00",
	}))

	_, err := f.createAppointment().Execute(ctx, CreateAppointmentInput{
		BarberID: f.barberID, CustomerEmail: "ann@x.io", Date: day, RequestedTime: "09:45", Service: "full service",
	})
	assert.ErrorIs(t, err, domain.ErrNoSlotAvailable)
}

func TestCreateAppointmentRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	uc := f.createAppointment()

	cases := []struct {
		name string
		in   CreateAppointmentInput
		want error
	}{
		{"bad time", CreateAppointmentInput{BarberID: f.barberID, Date: day, RequestedTime: "9:00"}, domain.ErrInvalidFormat},
		{"bad date", CreateAppointmentInput{BarberID: f.barberID, Date: "02/06/2025", RequestedTime: "09:00"}, domain.ErrInvalidFormat},
		{"unknown barber", CreateAppointmentInput{BarberID: 999, Date: day, RequestedTime: "09:00"}, domain.ErrBarberNotFound},
		{"before opening", CreateAppointmentInput{BarberID: f.barberID, Date: day, RequestedTime: "08:30"}, domain.ErrOutsideWorkingHours},
		{"at closing", CreateAppointmentInput{BarberID: f.barberID, Date: day, RequestedTime: "17:00"}, domain.ErrOutsideWorkingHours},
		{"day off", CreateAppointmentInput{BarberID: f.barberID, Date: "2025-06-03", RequestedTime: "09:00"}, domain.ErrOutsideWorkingHours},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.CustomerEmail = "ann@x.io"
			_, err := uc.Execute(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateAppointmentDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	f.book(t, "ann@x.io", "11:00", "shave")

	// The first booking holds 11:00, so the same customer gets a suggestion
	// before the duplicate check is reached.
	_, err := f.createAppointment().Execute(ctx, CreateAppointmentInput{
		BarberID: f.barberID, CustomerEmail: "ann@x.io", Date: day, RequestedTime: "11:00", Service: "shave",
	})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	f.book(t, "ann@x.io", "10:00", "haircut and beard")

	uc := NewCheckAvailability(f.store, f.resolver, f.cfg)

	out, err := uc.Execute(ctx, CheckAvailabilityInput{BarberID: f.barberID, Date: day, RequestedTime: "09:00", Service: "beard trim"})
	require.NoError(t, err)
	assert.True(t, out.Available)
	assert.Equal(t, domain.TimeSlot{Start: "09:00", End: "09:15"}, out.Slot)
	assert.Equal(t, 15, out.EstimatedTime)

	out, err = uc.Execute(ctx, CheckAvailabilityInput{BarberID: f.barberID, Date: day, RequestedTime: "10:15", Service: "haircut"})
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.Equal(t, domain.TimeSlot{Start: "10:45", End: "11:15"}, out.Slot)

	_, err = uc.Execute(ctx, CheckAvailabilityInput{BarberID: f.barberID, Date: day, RequestedTime: "18:00", Service: "haircut"})
	assert.ErrorIs(t, err, domain.ErrOutsideWorkingHours)
}

func TestCreateWalkIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	f.book(t, "ann@x.io", "09:30", "haircut")

	uc := NewCreateWalkIn(f.store, f.resolver, f.manager, f.notes, f.cfg, zerolog.Nop())
	out, err := uc.Execute(ctx, CreateWalkInInput{
		BarberID:      f.barberID,
		CustomerName:  "Walt",
		CustomerEmail: "walt@x.io",
		Date:          day,
		ArrivalTime:   "09:40",
		Service:       "Haircut",
	})
	require.NoError(t, err)

	w := out.WalkIn
	assert.Equal(t, "waiting", w.Status)
	assert.Equal(t, "10:05", w.StartTime)
	assert.Equal(t, "10:35", w.EndTime)
	assert.Equal(t, out.Entry.TokenNumber, w.TokenNumber)
	assert.Regexp(t, `^WALKIN-20250602-[0-9A-F]{4}$`, out.Entry.TokenNumber)
	assert.Equal(t, 1, out.Entry.Position)
	assert.Equal(t, "waiting", out.Entry.Status)

	assert.Equal(t, []notify.Kind{
		notify.KindWalkInAccepted,
		notify.KindBarberWalkIn,
		notify.KindTokenAssigned,
	}, f.notes.kinds())

	stored, err := f.store.GetWalkIn(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.TokenNumber, stored.TokenNumber)
}

func TestCreateWalkInOutsideHours(t *testing.T) {
	f := newFixture(t, 10)
	uc := NewCreateWalkIn(f.store, f.resolver, f.manager, f.notes, f.cfg, zerolog.Nop())

	_, err := uc.Execute(context.Background(), CreateWalkInInput{
		BarberID: f.barberID, CustomerName: "Walt", Date: day, ArrivalTime: "17:00", Service: "haircut",
	})
	assert.ErrorIs(t, err, domain.ErrOutsideWorkingHours)
	assert.Empty(t, f.notes.kinds())
}

func TestCreateWalkInDayFull(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	require.NoError(t, f.store.CreateBlockedSlot(ctx, &models.BlockedSlot{
		BarberID: f.barberID, Date: day, StartTime: "09:00", EndTime: "16:40",
	}))
	uc := NewCreateWalkIn(f.store, f.resolver, f.manager, f.notes, f.cfg, zerolog.Nop())

	_, err := uc.Execute(ctx, CreateWalkInInput{
		BarberID: f.barberID, CustomerName: "Walt", Date: day, ArrivalTime: "12:00", Service: "coloring",
	})
	assert.ErrorIs(t, err, domain.ErrNoSlotAvailable)

	walkIns, err := f.store.ListWalkIns(ctx, f.barberID, day)
	require.NoError(t, err)
	assert.Empty(t, walkIns)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	ap := f.book(t, "ann@x.io", "09:00", "haircut")
	uc := NewUpdateStatus(f.store, f.manager)

	_, err := uc.Appointment(ctx, f.barberID, ap.ID, domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = uc.Appointment(ctx, f.barberID+1, ap.ID, domain.StatusRejected)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rejected, err := uc.Appointment(ctx, f.barberID, ap.ID, domain.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)

	_, err = uc.Appointment(ctx, f.barberID, ap.ID, domain.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestUpdateWalkInNoShow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	out, err := NewCreateWalkIn(f.store, f.resolver, f.manager, nil, f.cfg, zerolog.Nop()).
		Execute(ctx, CreateWalkInInput{BarberID: f.barberID, CustomerName: "Walt", Date: day, ArrivalTime: "09:00", Service: "shave"})
	require.NoError(t, err)

	w, err := NewUpdateStatus(f.store, f.manager).WalkIn(ctx, f.barberID, out.WalkIn.ID, domain.StatusNoShow)
	require.NoError(t, err)
	assert.Equal(t, "no-show", w.Status)

	entry, err := f.store.GetEntry(ctx, out.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "no-show", entry.Status)
}

func TestCancelPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	pending := f.book(t, "ann@x.io", "09:00", "haircut")
	approved := f.book(t, "bea@x.io", "11:00", "haircut")
	_, err := f.manager.SetAppointmentStatus(ctx, approved.ID, domain.StatusApproved)
	require.NoError(t, err)

	uc := NewCancelPending(f.store, zerolog.Nop())
	assert.ErrorIs(t, uc.Execute(ctx, f.barberID, approved.ID), domain.ErrInvalidStateTransition)
	assert.ErrorIs(t, uc.Execute(ctx, f.barberID+1, pending.ID), domain.ErrNotFound)
	require.NoError(t, uc.Execute(ctx, f.barberID, pending.ID))

	_, err = f.store.GetAppointment(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The freed slot is bookable again.
	f.book(t, "cid@x.io", "09:00", "haircut")
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	f.book(t, "late@x.io", "15:00", "haircut")
	early := f.book(t, "early@x.io", "09:00", "haircut")
	_, err := f.manager.SetAppointmentStatus(ctx, early.ID, domain.StatusApproved)
	require.NoError(t, err)

	uc := NewListAppointments(f.store)
	all, err := uc.Execute(ctx, f.barberID, day)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "09:00", all[0].RequestedTime)
	assert.NotEmpty(t, all[0].TokenNumber)
	assert.Equal(t, "15:00", all[1].RequestedTime)

	approved, err := uc.Execute(ctx, f.barberID, day, domain.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "early@x.io", approved[0].CustomerEmail)

	_, err = uc.Execute(ctx, f.barberID, "june")
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestGetRecordsChecksOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	ap := f.book(t, "ann@x.io", "09:00", "haircut")
	out, err := NewCreateWalkIn(f.store, f.resolver, f.manager, nil, f.cfg, zerolog.Nop()).
		Execute(ctx, CreateWalkInInput{BarberID: f.barberID, CustomerName: "Walt", Date: day, ArrivalTime: "10:00", Service: "shave"})
	require.NoError(t, err)

	getAppointment := NewGetAppointment(f.store)
	got, err := getAppointment.Execute(ctx, f.barberID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.io", got.CustomerEmail)

	got, err = getAppointment.Execute(ctx, 0, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, got.ID)

	_, err = getAppointment.Execute(ctx, f.barberID+1, ap.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = getAppointment.Execute(ctx, f.barberID, ap.ID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	getWalkIn := NewGetWalkIn(f.store)
	w, err := getWalkIn.Execute(ctx, f.barberID, out.WalkIn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Walt", w.CustomerName)

	_, err = getWalkIn.Execute(ctx, f.barberID+1, out.WalkIn.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListWalkIns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	create := NewCreateWalkIn(f.store, f.resolver, f.manager, nil, f.cfg, zerolog.Nop())
	first, err := create.Execute(ctx, CreateWalkInInput{BarberID: f.barberID, CustomerName: "Walt", Date: day, ArrivalTime: "10:00", Service: "shave"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateWalkInInput{BarberID: f.barberID, CustomerName: "Vera", Date: day, ArrivalTime: "10:05", Service: "shave"})
	require.NoError(t, err)
	_, err = NewUpdateStatus(f.store, f.manager).WalkIn(ctx, f.barberID, first.WalkIn.ID, domain.StatusRejected)
	require.NoError(t, err)

	uc := NewListWalkIns(f.store)
	all, err := uc.Execute(ctx, f.barberID, day)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Walt", all[0].CustomerName)
	assert.Equal(t, "Vera", all[1].CustomerName)

	waiting, err := uc.Execute(ctx, f.barberID, day, domain.StatusWaiting)
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, "Vera", waiting[0].CustomerName)

	none, err := uc.Execute(ctx, f.barberID, "2025-06-03")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = uc.Execute(ctx, 0, day)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	_, err = uc.Execute(ctx, f.barberID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}
