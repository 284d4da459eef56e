package sqlite

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	paymentpkg "github.com/toxiclabs/payment-alerts/internal/payment"

	paymentmodel "github.com/toxiclabs/payment-alerts/internal/core/datamodel/payment"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.RepositoryAPI {
	return &PaymentRepository{
		db: db,
	}
}

// InsertIfAbsent relies on the primary key constraint for dedup: the
// insert is ON CONFLICT DO NOTHING, so concurrent redeliveries of the same
// id cannot race a separate existence check.
func (r *PaymentRepository) InsertIfAbsent(p *paymentmodel.Payment) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(p)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PaymentRepository) TotalBalance() (decimal.Decimal, error) {
	var total float64
	err := r.db.Model(&paymentmodel.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(total).Round(2), nil
}
