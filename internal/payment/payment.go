package payment

import (
	"github.com/shopspring/decimal"

	paymentmodel "github.com/toxiclabs/payment-alerts/internal/core/datamodel/payment"
)

// RepositoryAPI is implemented by the sqlite store.
type RepositoryAPI interface {
	// InsertIfAbsent persists the record unless a row with the same id
	// already exists. Duplicates are routine (webhook redelivery) and
	// report inserted=false with a nil error.
	InsertIfAbsent(p *paymentmodel.Payment) (inserted bool, err error)

	// TotalBalance sums every persisted amount, rounded to two places.
	TotalBalance() (decimal.Decimal, error)
}

// RecordResult reports whether a webhook delivery created a new record and
// the aggregate balance after it.
type RecordResult struct {
	Inserted bool
	Balance  decimal.Decimal
}

type ServiceAPI interface {
	RecordPayment(n *Normalized) (RecordResult, error)
	TotalBalance() (decimal.Decimal, error)
}
