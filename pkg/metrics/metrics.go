package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors exposed by the service
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReservationsPreparedTotal    prometheus.Counter
	SlotConflictsTotal           prometheus.Counter
	PaymentsConfirmedTotal       prometheus.Counter
	ReservationsCanceledTotal    *prometheus.CounterVec
	ReservationsRescheduledTotal prometheus.Counter

	EmailsSentTotal     *prometheus.CounterVec
	EmailFailuresTotal  prometheus.Counter
	ReceiptsIssuedTotal prometheus.Counter
	ReceiptFailures     prometheus.Counter
}

// New registers and returns the service metrics
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, path and status code",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration by method and path",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ReservationsPreparedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_prepared_total",
			Help:        "Reservations handed off to the payment gateway",
			ConstLabels: constLabels,
		}),

		SlotConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_conflicts_total",
			Help:        "Prepare or reschedule attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}),

		PaymentsConfirmedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "payments_confirmed_total",
			Help:        "Reservations confirmed by the payment gateway",
			ConstLabels: constLabels,
		}),

		ReservationsCanceledTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_canceled_total",
			Help:        "Canceled reservations by cancellation reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		ReservationsRescheduledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_rescheduled_total",
			Help:        "Reservations moved to a new slot",
			ConstLabels: constLabels,
		}),

		EmailsSentTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "emails_sent_total",
			Help:        "Notification emails sent by template",
			ConstLabels: constLabels,
		}, []string{"template"}),

		EmailFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "email_failures_total",
			Help:        "Notification emails that failed to send",
			ConstLabels: constLabels,
		}),

		ReceiptsIssuedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "receipts_issued_total",
			Help:        "Receipt documents issued through the invoicing provider",
			ConstLabels: constLabels,
		}),

		ReceiptFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "receipt_failures_total",
			Help:        "Receipt issuance attempts that failed",
			ConstLabels: constLabels,
		}),
	}
}

// The Inc helpers below are nil-safe so callers constructed without metrics
// (tests, tools) can skip the wiring.

func (m *Metrics) IncReservationsPrepared() {
	if m != nil {
		m.ReservationsPreparedTotal.Inc()
	}
}

func (m *Metrics) IncSlotConflicts() {
	if m != nil {
		m.SlotConflictsTotal.Inc()
	}
}

func (m *Metrics) IncPaymentsConfirmed() {
	if m != nil {
		m.PaymentsConfirmedTotal.Inc()
	}
}

func (m *Metrics) IncReservationsCanceled(reason string) {
	if m != nil {
		m.ReservationsCanceledTotal.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncReservationsRescheduled() {
	if m != nil {
		m.ReservationsRescheduledTotal.Inc()
	}
}

func (m *Metrics) IncEmailsSent(template string) {
	if m != nil {
		m.EmailsSentTotal.WithLabelValues(template).Inc()
	}
}

func (m *Metrics) IncEmailFailures() {
	if m != nil {
		m.EmailFailuresTotal.Inc()
	}
}

func (m *Metrics) IncReceiptsIssued() {
	if m != nil {
		m.ReceiptsIssuedTotal.Inc()
	}
}

func (m *Metrics) IncReceiptFailures() {
	if m != nil {
		m.ReceiptFailures.Inc()
	}
}
