package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the booking engine. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	queueOps             *prometheus.CounterVec
	availabilityChecks   *prometheus.CounterVec
	sweepOutcomes        *prometheus.CounterVec
	notificationsSent    *prometheus.CounterVec
	notificationsDropped prometheus.Counter
	tokenRetries         prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queueOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "queue",
			Name:      "operations_total",
			Help:      "Queue operations by name and outcome",
		}, []string{"op", "outcome"}),
		availabilityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "availability",
			Name:      "checks_total",
			Help:      "Slot checks by result",
		}, []string{"result"}),
		sweepOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "sweeper",
			Name:      "appointments_total",
			Help:      "Stale pending appointments processed by the sweeper",
		}, []string{"outcome"}),
		notificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "notify",
			Name:      "sent_total",
			Help:      "Notifications handed to a sender",
		}, []string{"kind", "status"}),
		notificationsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "notify",
			Name:      "dropped_total",
			Help:      "Notifications dropped because the dispatcher buffer was full",
		}),
		tokenRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "queue",
			Name:      "token_retries_total",
			Help:      "Token regenerations after a uniqueness conflict",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.queueOps,
		m.availabilityChecks,
		m.sweepOutcomes,
		m.notificationsSent,
		m.notificationsDropped,
		m.tokenRetries,
	)
	return m
}

func (m *Metrics) ObserveQueueOp(op string, err error) {
	if m == nil {
		return
	}
	m.queueOps.WithLabelValues(op, outcome(err)).Inc()
}

func (m *Metrics) ObserveAvailability(available bool) {
	if m == nil {
		return
	}
	result := "unavailable"
	if available {
		result = "available"
	}
	m.availabilityChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSweep(rejected bool) {
	if m == nil {
		return
	}
	result := "failed"
	if rejected {
		result = "rejected"
	}
	m.sweepOutcomes.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	m.notificationsSent.WithLabelValues(kind, outcome(err)).Inc()
}

func (m *Metrics) NotificationDropped() {
	if m == nil {
		return
	}
	m.notificationsDropped.Inc()
}

func (m *Metrics) TokenRetry() {
	if m == nil {
		return
	}
	m.tokenRetries.Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
