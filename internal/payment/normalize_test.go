package payment_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/toxiclabs/payment-alerts/internal"
	"github.com/toxiclabs/payment-alerts/internal/core/datamodel/gateway"
	paymentpkg "github.com/toxiclabs/payment-alerts/internal/payment"
)

var _ = Describe("ExtractNotes", func() {
	It("should read a single notes object", func() {
		notes := paymentpkg.ExtractNotes(json.RawMessage(`{"name":"Asha","phone":"9999999999"}`))
		Expect(notes.Name).To(Equal("Asha"))
		Expect(notes.Phone).To(Equal("9999999999"))
	})

	It("should take the first element of a notes array", func() {
		notes := paymentpkg.ExtractNotes(json.RawMessage(`[{"name":"Asha"},{"name":"Ravi"}]`))
		Expect(notes.Name).To(Equal("Asha"))
	})

	It("should return zero fields for an empty array", func() {
		notes := paymentpkg.ExtractNotes(json.RawMessage(`[]`))
		Expect(notes.Name).To(BeEmpty())
	})

	It("should return zero fields for absent notes", func() {
		notes := paymentpkg.ExtractNotes(nil)
		Expect(notes.Name).To(BeEmpty())
	})

	It("should return zero fields for undecodable notes", func() {
		notes := paymentpkg.ExtractNotes(json.RawMessage(`"free text"`))
		Expect(notes.Name).To(BeEmpty())
	})
})

var _ = Describe("Normalize", func() {
	var entity gateway.Entity

	BeforeEach(func() {
		entity = gateway.Entity{
			ID:           "pay_ABC123",
			Status:       gateway.StatusCaptured,
			Amount:       150000,
			Notes:        json.RawMessage(`{"name":"Asha","phone":"9999999999"}`),
			AcquirerData: gateway.AcquirerData{RRN: "227712345678"},
			CreatedAt:    1767171600, // 2025-12-31 14:30:00 IST
			Contact:      "+919999999999",
		}
	})

	It("should convert minor units to major units", func() {
		normalized, err := paymentpkg.Normalize(entity, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(normalized.Amount.String()).To(Equal("1500"))
	})

	It("should keep the transaction id and reference", func() {
		normalized, err := paymentpkg.Normalize(entity, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(normalized.ID).To(Equal("pay_ABC123"))
		Expect(normalized.UTR).To(Equal("227712345678"))
	})

	It("should format created_at in IST", func() {
		normalized, err := paymentpkg.Normalize(entity, nil)
		Expect(err).NotTo(HaveOccurred())

		expected := time.Unix(entity.CreatedAt, 0).
			In(time.FixedZone("IST", 5*3600+30*60)).
			Format("02 Jan 2006 03:04 PM")
		Expect(normalized.Time).To(Equal(expected))
	})

	Context("fallbacks", func() {
		It("should default the payer name when notes carry none", func() {
			entity.Notes = json.RawMessage(`{}`)
			normalized, err := paymentpkg.Normalize(entity, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(normalized.Name).To(Equal("Customer"))
		})

		It("should fall back to the gateway contact for the phone", func() {
			entity.Notes = json.RawMessage(`{"name":"Asha"}`)
			normalized, err := paymentpkg.Normalize(entity, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(normalized.Phone).To(Equal("+919999999999"))
		})

		It("should default the reference when the acquirer sent none", func() {
			entity.AcquirerData = gateway.AcquirerData{}
			normalized, err := paymentpkg.Normalize(entity, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(normalized.UTR).To(Equal("N/A"))
		})

		It("should use the supplied clock when created_at is absent", func() {
			entity.CreatedAt = 0
			now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
			normalized, err := paymentpkg.Normalize(entity, func() time.Time { return now })
			Expect(err).NotTo(HaveOccurred())
			// 09:00 UTC is 14:30 IST
			Expect(normalized.Time).To(Equal("14 Feb 2026 02:30 PM"))
		})
	})

	Context("when the payment id is missing", func() {
		It("should fail with a validation error", func() {
			entity.ID = ""
			_, err := paymentpkg.Normalize(entity, nil)
			Expect(err).To(MatchError(errors.ErrMissingPaymentID))
		})
	})
})
