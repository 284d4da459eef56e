package payment_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/toxiclabs/payment-alerts/internal/core/events"
	paymentpkg "github.com/toxiclabs/payment-alerts/internal/payment"
)

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) NotifyAll(text string) {
	m.messages = append(m.messages, text)
}

var _ = Describe("AlertHandler", func() {
	var (
		notifier *mockNotifier
		handler  *paymentpkg.AlertHandler
	)

	BeforeEach(func() {
		notifier = &mockNotifier{}
		handler = paymentpkg.NewAlertHandler(notifier, testLogger())
	})

	It("should fan the formatted alert out once per event", func() {
		event := events.NewPaymentCapturedEvent(
			"pay_001", "Asha", "+919999999999",
			decimal.NewFromInt(1500), "227712345678",
			"01 Jan 2026 10:15 AM",
			decimal.NewFromInt(4200),
		)

		Expect(handler.HandlePaymentCaptured(context.Background(), event)).To(Succeed())
		Expect(notifier.messages).To(HaveLen(1))

		msg := notifier.messages[0]
		Expect(msg).To(ContainSubstring("PAYMENT RECEIVED"))
		Expect(msg).To(ContainSubstring("Asha"))
		Expect(msg).To(ContainSubstring("<b>Phone:</b> +919999999999"))
		Expect(msg).To(ContainSubstring("₹1500"))
		Expect(msg).To(ContainSubstring("pay_001"))
		Expect(msg).To(ContainSubstring("₹4200"))
	})

	It("should omit the phone line when no contact was supplied", func() {
		event := events.NewPaymentCapturedEvent(
			"pay_002", "Customer", "",
			decimal.NewFromInt(250), "N/A",
			"01 Jan 2026 10:15 AM",
			decimal.NewFromInt(250),
		)

		Expect(handler.HandlePaymentCaptured(context.Background(), event)).To(Succeed())
		Expect(notifier.messages).To(HaveLen(1))
		Expect(notifier.messages[0]).NotTo(ContainSubstring("Phone:"))
	})

	It("should reject an unexpected event type", func() {
		event := &events.BaseEvent{ID: "x", Type: events.EventTypePaymentCaptured}
		Expect(handler.HandlePaymentCaptured(context.Background(), event)).NotTo(Succeed())
		Expect(notifier.messages).To(BeEmpty())
	})
})
