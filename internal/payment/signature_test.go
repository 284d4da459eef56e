package payment_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paymentpkg "github.com/toxiclabs/payment-alerts/internal/payment"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

var _ = Describe("VerifySignature", func() {
	const secret = "test-webhook-secret"
	body := []byte(`{"event":"payment.captured","payload":{}}`)

	Context("when the signature matches", func() {
		It("should accept the body", func() {
			sig := signBody(body, secret)
			Expect(paymentpkg.VerifySignature(body, sig, secret)).To(BeTrue())
		})
	})

	Context("when the signature does not match", func() {
		It("should reject a signature computed with a different secret", func() {
			sig := signBody(body, "wrong-secret")
			Expect(paymentpkg.VerifySignature(body, sig, secret)).To(BeFalse())
		})

		It("should reject a signature over different bytes", func() {
			sig := signBody([]byte(`{"event":"payment.captured","payload":{ }}`), secret)
			Expect(paymentpkg.VerifySignature(body, sig, secret)).To(BeFalse())
		})

		It("should reject a truncated signature", func() {
			sig := signBody(body, secret)
			Expect(paymentpkg.VerifySignature(body, sig[:10], secret)).To(BeFalse())
		})
	})

	Context("when inputs are missing", func() {
		It("should reject an absent signature header", func() {
			Expect(paymentpkg.VerifySignature(body, "", secret)).To(BeFalse())
		})

		It("should reject when no secret is configured", func() {
			sig := signBody(body, secret)
			Expect(paymentpkg.VerifySignature(body, sig, "")).To(BeFalse())
		})
	})
})
