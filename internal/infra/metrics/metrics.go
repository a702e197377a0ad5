package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels shared by the billing counters.
const (
	OutcomeCreated          = "created"
	OutcomeAlreadyProcessed = "already_processed"
	OutcomeNotPaid          = "not_paid"
	OutcomeAlreadyMember    = "already_member"
	OutcomeRejected         = "rejected"
	OutcomeError            = "error"
)

type Metrics struct {
	CheckoutSessions *prometheus.CounterVec
	Confirmations    *prometheus.CounterVec
	FreeJoins        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CheckoutSessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubero_checkout_sessions_total",
				Help: "Checkout session requests by outcome",
			},
			[]string{"outcome"},
		),
		Confirmations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubero_payment_confirmations_total",
				Help: "Payment confirmations by outcome",
			},
			[]string{"outcome"},
		),
		FreeJoins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clubero_free_joins_total",
				Help: "Free membership joins by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.CheckoutSessions, m.Confirmations, m.FreeJoins)
	return m
}

// The methods below are safe on a nil *Metrics.

func (m *Metrics) CheckoutSession(outcome string) {
	if m == nil {
		return
	}
	m.CheckoutSessions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Confirmation(outcome string) {
	if m == nil {
		return
	}
	m.Confirmations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) FreeJoin(outcome string) {
	if m == nil {
		return
	}
	m.FreeJoins.WithLabelValues(outcome).Inc()
}
