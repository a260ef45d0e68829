package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "intents_created_total",
			Help:      "Payment intents opened with the processor",
		},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "webhook_events_total",
			Help:      "Signature-verified webhook events by type",
		},
		[]string{"type"},
	)

	WebhookRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "webhook_rejected_total",
			Help:      "Webhook deliveries rejected before dispatch (bad signature or body)",
		},
	)

	OrderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "order_transitions_total",
			Help:      "Applied order status transitions by target status",
		},
		[]string{"status"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "emails_total",
			Help:      "Outbound notification emails by kind and result",
		},
		[]string{"kind", "result"},
	)
)
