package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/toxiclabs/payment-alerts/pkg/logger"
)

// TraceHeader carries the correlation id for a delivery. An inbound value
// set by a proxy is honoured so retried webhooks can be tied together.
const TraceHeader = "X-Trace-ID"

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		w.Header().Set(TraceHeader, traceID)

		// every log line for this delivery carries the trace id
		ctx := logger.With(r.Context(), "traceID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
