// Package notify delivers customer and barber notifications off the request
// path. Delivery failures are logged, never returned to callers.
package notify

import "context"

type Kind string

const (
	KindAppointmentStatusChanged Kind = "appointment-status-changed"
	KindWalkInAccepted           Kind = "walk-in-accepted"
	KindTokenAssigned            Kind = "token-assigned"
	KindBarberWalkIn             Kind = "barber-notified-of-walkin"
	KindAutoRejected             Kind = "auto-rejected"
)

type Notification struct {
	Kind      Kind
	BarberID  uint
	Recipient string
	Title     string
	Message   string
	Data      map[string]any
}

// Notifier accepts notifications fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// Sender delivers one notification.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// MultiSender fans one notification out to every sender and returns the
// first error.
type MultiSender []Sender

func (m MultiSender) Send(ctx context.Context, n Notification) error {
	var first error
	for _, s := range m {
		if err := s.Send(ctx, n); err != nil && first == nil {
			first = err
		}
	}
	return first
}
