package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Webhook processing outcome labels
const (
	WebhookOutcomeApplied   = "applied"
	WebhookOutcomeDuplicate = "duplicate"
	WebhookOutcomeYielded   = "yielded"
	WebhookOutcomeIgnored   = "ignored"
	WebhookOutcomeRejected  = "rejected"
)

// MetricsCollector records live lifecycle metrics
type MetricsCollector interface {
	/*
		RecordTransition record one lifecycle operation

			@param operation string - the lifecycle operation name
	*/
	RecordTransition(operation string)

	/*
		RecordWebhookOutcome record the outcome of one webhook state update

			@param outcome string - one of the webhook outcome labels
	*/
	RecordWebhookOutcome(outcome string)
}

// metricsCollectorImpl implements MetricsCollector against prometheus
type metricsCollectorImpl struct {
	transitions     *prometheus.CounterVec
	webhookOutcomes *prometheus.CounterVec
}

/*
NewMetricsCollector define a new live lifecycle metrics collector

	@param registry prometheus.Registerer - metrics registry to install against
	@returns new collector
*/
func NewMetricsCollector(registry prometheus.Registerer) MetricsCollector {
	return &metricsCollectorImpl{
		transitions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "live_lifecycle_transitions_total",
			Help: "Total number of live lifecycle operations by operation name",
		}, []string{"operation"}),
		webhookOutcomes: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "live_webhook_updates_total",
			Help: "Total number of webhook state updates by processing outcome",
		}, []string{"outcome"}),
	}
}

func (m *metricsCollectorImpl) RecordTransition(operation string) {
	m.transitions.WithLabelValues(operation).Inc()
}

func (m *metricsCollectorImpl) RecordWebhookOutcome(outcome string) {
	m.webhookOutcomes.WithLabelValues(outcome).Inc()
}
