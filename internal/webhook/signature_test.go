package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"message"}`)
	header := sign("topsecret", body)

	assert.True(t, VerifySignature("topsecret", body, header))
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"event":"message"}`)
	header := sign("topsecret", body)

	assert.False(t, VerifySignature("topsecret", []byte(`{"event":"messageAck"}`), header))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"event":"message"}`)
	header := sign("other", body)

	assert.False(t, VerifySignature("topsecret", body, header))
}

func TestVerifySignatureRequiresPrefix(t *testing.T) {
	body := []byte(`payload`)
	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write(body)
	bare := hex.EncodeToString(mac.Sum(nil))

	assert.False(t, VerifySignature("topsecret", body, bare))
	assert.False(t, VerifySignature("topsecret", body, "md5="+bare))
}

func TestVerifySignatureSkippedWithoutSecretOrHeader(t *testing.T) {
	body := []byte(`payload`)

	assert.True(t, VerifySignature("", body, "sha256=junk"))
	assert.True(t, VerifySignature("topsecret", body, ""))
}
