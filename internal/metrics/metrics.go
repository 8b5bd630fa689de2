package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "promo",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "promo",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPInFlightRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "promo",
		Name:      "http_in_flight_requests",
		Help:      "Requests currently being served.",
	})

	// Verification metrics

	TurnstileVerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "promo",
		Name:      "turnstile_verifications_total",
		Help:      "Turnstile siteverify outcomes.",
	}, []string{"outcome"})

	DeletionCallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "promo",
		Name:      "facebook_deletion_callbacks_total",
		Help:      "Facebook data-deletion callback outcomes.",
	}, []string{"outcome"})

	// Growth metrics

	SubscriptionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "promo",
		Name:      "subscriptions_total",
		Help:      "Subscription attempts, by result.",
	}, []string{"result"})

	MagicLinksSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "promo",
		Name:      "magic_links_sent_total",
		Help:      "Magic-link emails dispatched.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		HTTPInFlightRequests,
		TurnstileVerificationsTotal,
		DeletionCallbacksTotal,
		SubscriptionsTotal,
		MagicLinksSentTotal,
	)
}
