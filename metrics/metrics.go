package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	Charges       *prometheus.CounterVec
	Notifications *prometheus.CounterVec
}

// New registers the collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Charges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "donation",
				Subsystem: "server",
				Name:      "charges_total",
				Help:      "Charge attempts by classified outcome",
			},
			[]string{"outcome"},
		),
		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "donation",
				Subsystem: "server",
				Name:      "notifications_total",
				Help:      "Notification delivery attempts by channel and result",
			},
			[]string{"channel", "result"},
		),
	}
}
