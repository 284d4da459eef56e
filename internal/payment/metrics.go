package payment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	webhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhook_events_total",
		Help: "Webhook deliveries by outcome",
	}, []string{"outcome"})
)

const (
	outcomeRecorded         = "recorded"
	outcomeDuplicate        = "duplicate"
	outcomeIgnored          = "ignored"
	outcomeInvalidSignature = "invalid_signature"
	outcomeMalformed        = "malformed"
	outcomeStorageError     = "storage_error"
)
