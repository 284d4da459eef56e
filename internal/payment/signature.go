package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks the gateway's HMAC-SHA256 signature over the raw
// request body. It must be given the exact bytes received on the wire:
// re-serialized JSON is not guaranteed to match what the gateway signed.
// Returns false, never an error, on a missing header or unconfigured secret.
func VerifySignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
