// Package facebook verifies Facebook signed_request payloads, as delivered
// to the data-deletion callback. Every gate fails closed: a request is only
// trusted after the secret check, the HMAC check, and the algorithm check
// have all passed, in that order.
package facebook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ProviderID is the provider name under which Facebook accounts are linked.
const ProviderID = "facebook"

const expectedAlgorithm = "HMAC-SHA256"

var (
	ErrSecretNotConfigured  = errors.New("facebook app secret is not configured")
	ErrMalformedRequest     = errors.New("invalid facebook signed_request")
	ErrInvalidSignature     = errors.New("invalid facebook signature")
	ErrUnsupportedAlgorithm = errors.New("unsupported signature algorithm")
)

// Payload is the decoded signed_request body. Facebook has shipped the user
// ID both as a top-level field and nested under "user", so both are checked.
type Payload struct {
	Algorithm string `json:"algorithm"`
	IssuedAt  int64  `json:"issued_at"`
	UserID    string `json:"user_id"`
	User      struct {
		ID string `json:"id"`
	} `json:"user"`
}

// ExternalUserID returns the Facebook user ID from whichever field shape the
// payload used, or "" if neither is present.
func (p *Payload) ExternalUserID() string {
	if p.UserID != "" {
		return p.UserID
	}
	return p.User.ID
}

// ParseSignedRequest authenticates a "signature.payload" string against the
// app secret and returns the decoded payload. The signature is recomputed as
// HMAC-SHA256 over the raw payload segment and compared in constant time.
func ParseSignedRequest(secret, signedRequest string) (*Payload, error) {
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	encodedSignature, encodedPayload, ok := strings.Cut(signedRequest, ".")
	if !ok || encodedSignature == "" || encodedPayload == "" {
		return nil, ErrMalformedRequest
	}

	providedSignature, err := decodeBase64URL(encodedSignature)
	if err != nil {
		return nil, ErrMalformedRequest
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encodedPayload))
	expectedSignature := mac.Sum(nil)

	// hmac.Equal rejects length mismatches without leaking timing.
	if !hmac.Equal(providedSignature, expectedSignature) {
		return nil, ErrInvalidSignature
	}

	rawPayload, err := decodeBase64URL(encodedPayload)
	if err != nil {
		return nil, ErrMalformedRequest
	}

	var payload Payload
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}

	if !strings.EqualFold(payload.Algorithm, expectedAlgorithm) {
		return nil, ErrUnsupportedAlgorithm
	}

	return &payload, nil
}

// decodeBase64URL accepts the url-safe alphabet with or without padding;
// Facebook strips it, but replayed fixtures may not.
func decodeBase64URL(value string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(value, "="))
}
