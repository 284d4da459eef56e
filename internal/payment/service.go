package payment

import (
	"log/slog"

	"github.com/shopspring/decimal"

	errors "github.com/toxiclabs/payment-alerts/internal"
	paymentmodel "github.com/toxiclabs/payment-alerts/internal/core/datamodel/payment"
)

// Service handles payment persistence and balance aggregation.
type Service struct {
	repository RepositoryAPI
	logger     *slog.Logger
}

func NewService(repository RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// RecordPayment persists a normalized payment exactly once and returns the
// aggregate balance including it. A redelivered id is a no-op, not an error.
func (s *Service) RecordPayment(n *Normalized) (RecordResult, error) {
	record := &paymentmodel.Payment{
		ID:     n.ID,
		Name:   n.Name,
		Amount: n.Amount.InexactFloat64(),
		UTR:    n.UTR,
		Time:   n.Time,
	}

	inserted, err := s.repository.InsertIfAbsent(record)
	if err != nil {
		s.logger.Error("failed to persist payment", "error", err, "payment_id", n.ID)
		return RecordResult{}, errors.NewStorageError("failed to persist payment", err)
	}

	if !inserted {
		s.logger.Info("duplicate payment delivery ignored", "payment_id", n.ID)
	} else {
		s.logger.Info("payment recorded",
			"payment_id", n.ID,
			"amount", n.Amount.String(),
			"utr", n.UTR)
	}

	balance, err := s.repository.TotalBalance()
	if err != nil {
		s.logger.Error("failed to compute balance", "error", err, "payment_id", n.ID)
		return RecordResult{}, errors.NewStorageError("failed to compute balance", err)
	}

	return RecordResult{Inserted: inserted, Balance: balance}, nil
}

// TotalBalance recomputes the aggregate on demand; it is never cached.
func (s *Service) TotalBalance() (decimal.Decimal, error) {
	balance, err := s.repository.TotalBalance()
	if err != nil {
		s.logger.Error("failed to compute balance", "error", err)
		return decimal.Zero, errors.NewStorageError("failed to compute balance", err)
	}
	return balance, nil
}
