package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/toxiclabs/payment-alerts/internal/core/events"
)

// Notifier fans a formatted alert out to every configured recipient.
// Delivery is best-effort and must never fail the caller.
type Notifier interface {
	NotifyAll(text string)
}

// AlertHandler turns payment captured events into Telegram alerts.
type AlertHandler struct {
	notifier Notifier
	logger   *slog.Logger
}

func NewAlertHandler(notifier Notifier, logger *slog.Logger) *AlertHandler {
	return &AlertHandler{
		notifier: notifier,
		logger:   logger,
	}
}

func (h *AlertHandler) HandlePaymentCaptured(ctx context.Context, event events.Event) error {
	captured, ok := event.(*events.PaymentCapturedEvent)
	if !ok {
		return fmt.Errorf("expected PaymentCapturedEvent, got %T", event)
	}

	h.logger.Info("sending payment alert",
		"payment_id", captured.PaymentID,
		"amount", captured.Amount.String(),
		"event_id", captured.EventID())

	h.notifier.NotifyAll(FormatPaymentAlert(captured))
	return nil
}

func (h *AlertHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePaymentCaptured, h.HandlePaymentCaptured)

	h.logger.Info("payment alert handlers registered",
		"handlers", []string{events.EventTypePaymentCaptured})
}

// FormatPaymentAlert renders the HTML alert posted to admins and the group.
// The phone line only appears when the gateway supplied a contact.
func FormatPaymentAlert(e *events.PaymentCapturedEvent) string {
	var b strings.Builder

	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("✅ <b>PAYMENT RECEIVED</b>\n\n")
	fmt.Fprintf(&b, "👤 <b>Customer:</b> %s\n", e.PayerName)
	if e.PayerPhone != "" {
		fmt.Fprintf(&b, "📱 <b>Phone:</b> %s\n", e.PayerPhone)
	}
	fmt.Fprintf(&b, "💰 <b>Amount:</b> ₹%s\n", e.Amount.String())
	fmt.Fprintf(&b, "🧾 <b>UTR:</b> %s\n", e.UTR)
	fmt.Fprintf(&b, "🔗 <b>Txn ID:</b> %s\n", e.PaymentID)
	fmt.Fprintf(&b, "⏰ <b>Time:</b> %s\n\n", e.CapturedAt)
	fmt.Fprintf(&b, "📊 <b>Total Collection:</b> ₹%s\n", e.Balance.String())
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("🤖 <b>ToxicLabs Payment Alerts</b>")

	return b.String()
}
