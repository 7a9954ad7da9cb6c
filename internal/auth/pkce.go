// Package auth implements the OAuth authorization-code flow with PKCE
// against the music service's accounts endpoints, and the session state
// carried between login, refresh and logout.
package auth

import (
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

const (
	minVerifierLen = 43
	maxVerifierLen = 128
)

// RFC 7636 unreserved characters allowed in a code verifier.
const verifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// PKCEPair is the ephemeral secret used once per login attempt. The verifier
// is held by the caller for the duration of one login round-trip and
// discarded after the exchange.
type PKCEPair struct {
	Verifier  string `json:"codeVerifier"`
	Challenge string `json:"codeChallenge"`
}

// NewPKCEPair generates a cryptographically random verifier and its
// SHA-256-derived, base64url, unpadded challenge.
func NewPKCEPair() PKCEPair {
	verifier := oauth2.GenerateVerifier()
	return PKCEPair{
		Verifier:  verifier,
		Challenge: oauth2.S256ChallengeFromVerifier(verifier),
	}
}

// ChallengeFromVerifier recomputes the S256 challenge for a verifier.
func ChallengeFromVerifier(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}

// ValidateVerifier checks the RFC 7636 constraints on a caller-supplied
// verifier before it is sent to the token endpoint.
func ValidateVerifier(verifier string) error {
	if len(verifier) < minVerifierLen || len(verifier) > maxVerifierLen {
		return fmt.Errorf("auth: code verifier must be %d-%d characters, got %d", minVerifierLen, maxVerifierLen, len(verifier))
	}
	for _, r := range verifier {
		if !strings.ContainsRune(verifierAlphabet, r) {
			return fmt.Errorf("auth: code verifier contains invalid character %q", r)
		}
	}
	return nil
}
