package notify

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type recordingSender struct {
	mu   sync.Mutex
	got  []Notification
	err  error
	gate chan struct{}
}

func (s *recordingSender) Send(_ context.Context, n Notification) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	return s.err
}

func TestDispatcherDeliversOnClose(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 10, zerolog.Nop(), nil)

	d.Notify(Notification{Kind: KindTokenAssigned})
	d.Notify(Notification{Kind: KindWalkInAccepted})
	d.Close()

	require.Len(t, sender.got, 2)
	assert.Equal(t, KindTokenAssigned, sender.got[0].Kind)

	// Notify after Close is ignored.
	d.Notify(Notification{Kind: KindAutoRejected})
	d.Close()
	assert.Len(t, sender.got, 2)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	gate := make(chan struct{})
	sender := &recordingSender{gate: gate}
	m := metrics.New(prometheus.NewRegistry())
	d := NewDispatcher(sender, 1, zerolog.Nop(), m)

	// The worker blocks on the first send; one more fits in the buffer.
	d.Notify(Notification{Kind: KindTokenAssigned})
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, timeout, tick)
	d.Notify(Notification{Kind: KindTokenAssigned})
	d.Notify(Notification{Kind: KindTokenAssigned})

	close(gate)
	d.Close()
	assert.Len(t, sender.got, 2)
}

func TestDispatcherLogsSenderErrors(t *testing.T) {
	var buf bytes.Buffer
	sender := &recordingSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, 1, zerolog.New(&buf), nil)

	d.Notify(Notification{Kind: KindAutoRejected})
	d.Close()

	assert.Contains(t, buf.String(), "smtp down")
}

func TestMultiSender(t *testing.T) {
	a := &recordingSender{err: errors.New("a failed")}
	b := &recordingSender{}

	err := MultiSender{a, b}.Send(context.Background(), Notification{Kind: KindBarberWalkIn})
	assert.EqualError(t, err, "a failed")
	assert.Len(t, b.got, 1)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLogSender(zerolog.New(&buf)).Send(context.Background(), WalkInAccepted(&models.WalkIn{ID: 3, CustomerEmail: "w@x.io"})))
	assert.Contains(t, buf.String(), `"kind":"walk-in-accepted"`)
	assert.Contains(t, buf.String(), `"recipient":"w@x.io"`)
}

func TestMessages(t *testing.T) {
	ap := &models.Appointment{ID: 9, BarberID: 2, CustomerEmail: "c@x.io", Status: "approved", RequestedTime: "09:00"}

	n := AppointmentStatusChanged(ap)
	assert.Equal(t, "Your appointment has been approved!", n.Message)
	assert.Equal(t, "09:00", n.Data["time"])
	assert.Equal(t, "c@x.io", n.Recipient)

	ap.Status = "weird"
	assert.Equal(t, "Your appointment status has been updated.", AppointmentStatusChanged(ap).Message)

	assert.Equal(t, KindAutoRejected, AutoRejected(ap).Kind)
	assert.Equal(t, uint(2), BarberWalkIn(&models.WalkIn{BarberID: 2}).BarberID)
	assert.Equal(t, 4, TokenAssigned(&models.QueueEntry{Position: 4}, "c@x.io").Data["position"])
}
