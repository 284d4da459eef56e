package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	errors "github.com/toxiclabs/payment-alerts/internal"
	"github.com/toxiclabs/payment-alerts/internal/core/datamodel/gateway"
	"github.com/toxiclabs/payment-alerts/internal/core/events"
	"github.com/toxiclabs/payment-alerts/internal/transport"
)

// WebhookHandler ingests gateway payment webhooks: verify, parse, filter,
// normalize, persist, then publish for best-effort alerting.
type WebhookHandler struct {
	*transport.BaseHandler
	paymentService ServiceAPI
	eventBus       *events.EventBus
	secret         string
}

func NewWebhookHandler(baseHandler *transport.BaseHandler, paymentService ServiceAPI, eventBus *events.EventBus, secret string) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler:    baseHandler,
		paymentService: paymentService,
		eventBus:       eventBus,
		secret:         secret,
	}
}

func (h *WebhookHandler) HandleGatewayWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.Logger.Error("failed to read webhook body", "error", err)
		h.WriteText(w, http.StatusBadRequest, AckInvalid)
		return
	}

	signature := r.Header.Get(gateway.SignatureHeader)

	if h.secret == "" {
		h.Logger.Warn("no webhook secret configured, skipping signature verification")
	} else if !VerifySignature(body, signature, h.secret) {
		webhookEventsTotal.WithLabelValues(outcomeInvalidSignature).Inc()
		h.Logger.Warn("rejected webhook with bad signature",
			"code", errors.ErrInvalidSignature.Code,
			"signature_present", signature != "")
		h.WriteText(w, errors.ErrInvalidSignature.StatusCode, AckInvalid)
		return
	}

	var env gateway.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		webhookEventsTotal.WithLabelValues(outcomeMalformed).Inc()
		h.Logger.Error("malformed webhook payload",
			"code", errors.ErrMalformedPayload.Code,
			"error", err)
		h.WriteText(w, errors.ErrMalformedPayload.StatusCode, AckInvalid)
		return
	}

	entity := env.Payload.Payment.Entity

	if env.Event != gateway.EventPaymentCaptured || entity.Status != gateway.StatusCaptured {
		webhookEventsTotal.WithLabelValues(outcomeIgnored).Inc()
		h.Logger.Info("ignoring webhook event",
			"event", env.Event,
			"status", entity.Status)
		h.WriteText(w, http.StatusOK, AckIgnored)
		return
	}

	normalized, err := Normalize(entity, nil)
	if err != nil {
		webhookEventsTotal.WithLabelValues(outcomeMalformed).Inc()
		status := http.StatusBadRequest
		if appErr, ok := errors.IsAppError(err); ok {
			status = appErr.StatusCode
		}
		h.Logger.Error("failed to normalize payment entity", "error", err)
		h.WriteText(w, status, AckInvalid)
		return
	}

	result, err := h.paymentService.RecordPayment(normalized)
	if err != nil {
		webhookEventsTotal.WithLabelValues(outcomeStorageError).Inc()
		status := http.StatusInternalServerError
		if appErr, ok := errors.IsAppError(err); ok {
			status = appErr.StatusCode
		}
		// surface storage failures so the gateway retries the delivery
		h.WriteError(w, status, "failed to record payment")
		return
	}

	if result.Inserted {
		webhookEventsTotal.WithLabelValues(outcomeRecorded).Inc()
		event := events.NewPaymentCapturedEvent(
			normalized.ID,
			normalized.Name,
			normalized.Phone,
			normalized.Amount,
			normalized.UTR,
			normalized.Time,
			result.Balance,
		)
		h.eventBus.Publish(context.Background(), event)
		h.Logger.Info("published payment captured event",
			"event_id", event.EventID(),
			"payment_id", normalized.ID)
	} else {
		webhookEventsTotal.WithLabelValues(outcomeDuplicate).Inc()
	}

	h.WriteJSON(w, http.StatusOK, WebhookAck{Status: "ok"})
}
