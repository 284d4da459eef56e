package payment

// WebhookAck is the structured success acknowledgment for the gateway.
type WebhookAck struct {
	Status string `json:"status"`
}

// Plain-text acknowledgment bodies, fixed by the gateway contract.
const (
	AckIgnored = "Ignored"
	AckInvalid = "Invalid"
)
