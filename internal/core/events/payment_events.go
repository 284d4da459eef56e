package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypePaymentCaptured = "payment.captured"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// PaymentCapturedEvent is published after a captured payment has been
// durably recorded. Balance is the aggregate total including this payment.
type PaymentCapturedEvent struct {
	BaseEvent
	PaymentID  string          `json:"payment_id"`
	PayerName  string          `json:"payer_name"`
	PayerPhone string          `json:"payer_phone,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	UTR        string          `json:"utr"`
	CapturedAt string          `json:"captured_at"`
	Balance    decimal.Decimal `json:"balance"`
}

func NewPaymentCapturedEvent(paymentID, payerName, payerPhone string, amount decimal.Decimal, utr, capturedAt string, balance decimal.Decimal) *PaymentCapturedEvent {
	return &PaymentCapturedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentCaptured,
			Timestamp: time.Now(),
		},
		PaymentID:  paymentID,
		PayerName:  payerName,
		PayerPhone: payerPhone,
		Amount:     amount,
		UTR:        utr,
		CapturedAt: capturedAt,
		Balance:    balance,
	}
}
