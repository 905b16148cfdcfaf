package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks an X-Waha-Signature header against the raw
// request body. Validation is skipped when no secret is configured or
// the header is absent; WAHA deployments without a shared secret send
// unsigned webhooks.
func VerifySignature(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return true
	}
	if !strings.HasPrefix(header, "sha256=") {
		return false
	}
	got := strings.TrimPrefix(header, "sha256=")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(got), []byte(want))
}
