package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-queue/internal/metrics"
)

const (
	DefaultBuffer = 100
	sendTimeout   = 5 * time.Second
)

// Dispatcher hands notifications to a Sender from a single worker
// goroutine. When the buffer is full the notification is dropped.
type Dispatcher struct {
	sender  Sender
	queue   chan Notification
	log     zerolog.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sender Sender, buffer int, log zerolog.Logger, m *metrics.Metrics) *Dispatcher {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	d := &Dispatcher{
		sender:  sender,
		queue:   make(chan Notification, buffer),
		log:     log.With().Str("component", "notify").Logger(),
		metrics: m,
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.Send(ctx, n)
		cancel()

		d.metrics.ObserveNotification(string(n.Kind), err)
		if err != nil {
			d.log.Error().Err(err).Str("kind", string(n.Kind)).Msg("notification failed")
		}
	}
}

func (d *Dispatcher) Notify(n Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- n:
	default:
		d.metrics.NotificationDropped()
		d.log.Warn().Str("kind", string(n.Kind)).Msg("notification queue full, dropping")
	}
}

// Close stops accepting notifications and waits for the buffered ones to be
// sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
