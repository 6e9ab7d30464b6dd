// Package fingerprint derives a stable pseudonymous visitor identity from
// request header signals, standing in for a visitor id when the client does
// not carry cookies or sessions.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// identityLength is the number of hex characters kept from the digest. The
// truncation trades collision resistance for shorter keys; the result is a
// best-effort pseudonymous identity, not a security credential.
const identityLength = 16

// Signals is the header-derived input bundle. Absent headers map to empty
// strings, which still produce a valid (shared) identity.
type Signals struct {
	UserAgent        string
	AcceptLanguage   string
	ScreenResolution string
	Timezone         string
	Platform         string
}

// Generate returns the visitor identity for the given signals: the first 16
// hex characters of a SHA-256 digest over the fields joined in fixed order.
// The function is pure; identical signals always yield identical identities
// across calls and process restarts.
func Generate(s Signals) string {
	raw := strings.Join([]string{
		s.UserAgent,
		s.AcceptLanguage,
		s.ScreenResolution,
		s.Timezone,
		s.Platform,
	}, "|")

	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:identityLength]
}
