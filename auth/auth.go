// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
)

// FingerprintDisplayLen is the default number of leading hex characters
// shown when shortening a fingerprint for display.
const FingerprintDisplayLen = 8

// Fingerprint derives the opaque one-way token for a raw email address.
// Input is trimmed and lowercased first so "  A@B.edu " and "a@b.edu"
// always map to the same token. The result is a 64-char hex SHA-256
// digest; the email cannot be recovered from it. An empty string is a
// valid (if degenerate) identity and still hashes deterministically.
func Fingerprint(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// ShortenFingerprint returns a display form of a fingerprint: the first
// visible hex chars, an ellipsis, and the last 4. Cosmetic only - never
// used for lookups. Fingerprints too short to shorten are returned as-is.
func ShortenFingerprint(fp string, visible int) string {
	if visible <= 0 {
		visible = FingerprintDisplayLen
	}
	if len(fp) <= visible+4 {
		return fp
	}
	return fmt.Sprintf("%s...%s", fp[:visible], fp[len(fp)-4:])
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SessionClaims is the payload of a dashboard session token. It carries
// only the fingerprint - the raw email never leaves the verify handler.
type SessionClaims struct {
	Fingerprint string `json:"fpr"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a dashboard session token for a verified
// fingerprint. The token grants aggregate read access for its lifetime;
// clients cache it for the session instead of re-verifying per view.
func IssueSessionToken(fingerprint, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Fingerprint: fingerprint,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns its claims.
// Expired, malformed, or wrongly-signed tokens all return ErrInvalidToken.
func ParseSessionToken(token, secret string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.Fingerprint == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
