package payment_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	apperrors "github.com/toxiclabs/payment-alerts/internal"
	paymentmodel "github.com/toxiclabs/payment-alerts/internal/core/datamodel/payment"
	paymentpkg "github.com/toxiclabs/payment-alerts/internal/payment"
)

// Mock repository for testing
type mockPaymentRepository struct {
	records      map[string]*paymentmodel.Payment
	insertError  error
	balanceError error
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{
		records: make(map[string]*paymentmodel.Payment),
	}
}

func (m *mockPaymentRepository) InsertIfAbsent(p *paymentmodel.Payment) (bool, error) {
	if m.insertError != nil {
		return false, m.insertError
	}
	if _, exists := m.records[p.ID]; exists {
		return false, nil
	}
	m.records[p.ID] = p
	return true, nil
}

func (m *mockPaymentRepository) TotalBalance() (decimal.Decimal, error) {
	if m.balanceError != nil {
		return decimal.Zero, m.balanceError
	}
	total := decimal.Zero
	for _, p := range m.records {
		total = total.Add(decimal.NewFromFloat(p.Amount))
	}
	return total.Round(2), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Service", func() {
	var (
		service  *paymentpkg.Service
		mockRepo *mockPaymentRepository
	)

	normalized := func(id string, amount int64) *paymentpkg.Normalized {
		return &paymentpkg.Normalized{
			ID:     id,
			Name:   "Asha",
			Amount: decimal.NewFromInt(amount),
			UTR:    "227712345678",
			Time:   "01 Jan 2026 10:15 AM",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockPaymentRepository()
		service = paymentpkg.NewService(mockRepo, testLogger())
	})

	Describe("RecordPayment", func() {
		Context("with a new payment id", func() {
			It("should persist exactly one record and report the new balance", func() {
				result, err := service.RecordPayment(normalized("pay_001", 1500))

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Inserted).To(BeTrue())
				Expect(result.Balance.String()).To(Equal("1500"))
				Expect(mockRepo.records).To(HaveLen(1))
			})

			It("should add to the pre-existing total", func() {
				_, err := service.RecordPayment(normalized("pay_001", 1500))
				Expect(err).NotTo(HaveOccurred())

				result, err := service.RecordPayment(normalized("pay_002", 500))
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Balance.String()).To(Equal("2000"))
			})
		})

		Context("with a previously seen id", func() {
			It("should not create a second record and keep the balance unchanged", func() {
				first, err := service.RecordPayment(normalized("pay_001", 1500))
				Expect(err).NotTo(HaveOccurred())

				second, err := service.RecordPayment(normalized("pay_001", 1500))
				Expect(err).NotTo(HaveOccurred())
				Expect(second.Inserted).To(BeFalse())
				Expect(second.Balance).To(Equal(first.Balance))
				Expect(mockRepo.records).To(HaveLen(1))
			})
		})

		Context("when the store fails", func() {
			It("should surface insert failures as storage errors", func() {
				mockRepo.insertError = errors.New("disk I/O error")

				_, err := service.RecordPayment(normalized("pay_001", 1500))
				Expect(err).To(HaveOccurred())

				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeStorageFailure))
			})

			It("should surface balance failures as storage errors", func() {
				mockRepo.balanceError = errors.New("database is locked")

				_, err := service.RecordPayment(normalized("pay_001", 1500))
				Expect(err).To(HaveOccurred())

				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeStorageFailure))
			})
		})
	})

	Describe("TotalBalance", func() {
		It("should return zero for an empty store", func() {
			balance, err := service.TotalBalance()
			Expect(err).NotTo(HaveOccurred())
			Expect(balance.IsZero()).To(BeTrue())
		})

		It("should return the running total", func() {
			_, err := service.RecordPayment(normalized("pay_001", 1500))
			Expect(err).NotTo(HaveOccurred())

			balance, err := service.TotalBalance()
			Expect(err).NotTo(HaveOccurred())
			Expect(balance.String()).To(Equal("1500"))
		})
	})
})
