package payment

// Payment is the sole persisted entity: one row per captured gateway
// payment, keyed by the gateway transaction id. Rows are written once and
// never mutated or deleted.
type Payment struct {
	ID     string  `gorm:"column:id;primaryKey"`
	Name   string  `gorm:"column:name"`
	Amount float64 `gorm:"column:amount"`
	UTR    string  `gorm:"column:utr"`
	Time   string  `gorm:"column:time"`
}

func (Payment) TableName() string {
	return "payments"
}
