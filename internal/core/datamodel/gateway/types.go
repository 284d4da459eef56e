package gateway

import (
	"encoding/json"
)

const (
	EventPaymentCaptured = "payment.captured"
	StatusCaptured       = "captured"
	SignatureHeader      = "X-Razorpay-Signature"

	// DefaultPayerName is used when no name can be extracted from the event.
	DefaultPayerName = "Customer"
	// DefaultReference is used when the acquirer supplied no bank reference.
	DefaultReference = "N/A"
)

// Envelope is the outer webhook event shape sent by the gateway.
type Envelope struct {
	Event   string  `json:"event"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	Payment PaymentWrapper `json:"payment"`
}

type PaymentWrapper struct {
	Entity Entity `json:"entity"`
}

// Entity is the captured payment as the gateway reports it. Notes is kept
// raw because the gateway emits it either as an object or as an array of
// objects depending on how the payment was created.
type Entity struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Amount       int64           `json:"amount"`
	Notes        json.RawMessage `json:"notes"`
	AcquirerData AcquirerData    `json:"acquirer_data"`
	CreatedAt    int64           `json:"created_at"`
	Contact      string          `json:"contact"`
	Email        string          `json:"email"`
}

type AcquirerData struct {
	RRN string `json:"rrn"`
}

// NoteFields carries the payer details a merchant may attach to a payment.
type NoteFields struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
