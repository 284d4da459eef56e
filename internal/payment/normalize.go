package payment

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	errors "github.com/toxiclabs/payment-alerts/internal"
	"github.com/toxiclabs/payment-alerts/internal/core/datamodel/gateway"
)

// istZone is the fixed display timezone for captured-at timestamps.
var istZone = time.FixedZone("IST", 5*3600+30*60)

const capturedAtLayout = "02 Jan 2006 03:04 PM"

var minorUnitsPerRupee = decimal.NewFromInt(100)

// Normalized is a captured payment after field extraction, ready to be
// persisted and formatted.
type Normalized struct {
	ID     string
	Name   string
	Phone  string
	Amount decimal.Decimal
	UTR    string
	Time   string
}

// ExtractNotes decodes the gateway notes blob, which is either a single
// object or a non-empty array of objects. For an array the first element
// wins. An empty or undecodable blob yields zero-value fields.
func ExtractNotes(raw json.RawMessage) gateway.NoteFields {
	if len(raw) == 0 {
		return gateway.NoteFields{}
	}

	var single gateway.NoteFields
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var many []gateway.NoteFields
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0]
	}

	return gateway.NoteFields{}
}

// Normalize applies the ordered extraction rules to a gateway payment
// entity. now supplies the fallback timestamp when the gateway omits
// created_at; passing nil uses the wall clock.
func Normalize(entity gateway.Entity, now func() time.Time) (*Normalized, error) {
	if entity.ID == "" {
		return nil, errors.ErrMissingPaymentID
	}

	if now == nil {
		now = time.Now
	}

	notes := ExtractNotes(entity.Notes)

	name := notes.Name
	if name == "" {
		name = gateway.DefaultPayerName
	}

	phone := notes.Phone
	if phone == "" {
		phone = entity.Contact
	}

	utr := entity.AcquirerData.RRN
	if utr == "" {
		utr = gateway.DefaultReference
	}

	capturedAt := now().In(istZone)
	if entity.CreatedAt > 0 {
		capturedAt = time.Unix(entity.CreatedAt, 0).In(istZone)
	}

	return &Normalized{
		ID:     entity.ID,
		Name:   name,
		Phone:  phone,
		Amount: decimal.NewFromInt(entity.Amount).Div(minorUnitsPerRupee),
		UTR:    utr,
		Time:   capturedAt.Format(capturedAtLayout),
	}, nil
}
