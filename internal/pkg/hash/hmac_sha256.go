package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrEmptySecret is returned when a signer is built without a key.
var ErrEmptySecret = errors.New("hmac secret is required")

// HMACSHA256 signs strings with HMAC-SHA256 and hex-encodes the digest.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a signer keyed by secret.
func NewHMACSHA256(secret string) (*HMACSHA256, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HMACSHA256{secret: []byte(secret)}, nil
}

// Sign returns the hex HMAC of str.
func (s *HMACSHA256) Sign(str string) string {
	return hex.EncodeToString(s.sum(str))
}

// Verify reports whether signature is the hex HMAC of str.
func (s *HMACSHA256) Verify(signature, str string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, s.sum(str))
}

func (s *HMACSHA256) sum(str string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(str))
	return h.Sum(nil)
}
