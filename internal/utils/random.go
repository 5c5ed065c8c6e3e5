package utils // package utils provides helpers for generating codes and tokens

import (
	"crypto/rand" // secure random number generation
	"encoding/hex" // hex encoding for guest tokens

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// codeAlphabet is the character set for public event codes.  It is
// restricted to unambiguous URL-safe alphanumerics so codes can be
// pasted into links and spoken aloud.
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// EventCodeLength is the length of a generated event code.
const EventCodeLength = 12

// GuestTokenBytes is the number of random bytes behind a guest token.
// 32 bytes (256 bits) hex-encode to 64 characters, comfortably above
// the 128-bit guessing-resistance floor for capability tokens.
const GuestTokenBytes = 32

// NewEventCode returns a short URL-safe code for addressing an event
// publicly.  Uniqueness is the caller's concern: codes are stored under
// a unique index and regenerated on collision.
func NewEventCode() (string, error) {
	return gonanoid.Generate(codeAlphabet, EventCodeLength)
}

// NewGuestToken returns a hex-encoded secret token acting as a guest's
// sole credential.  The underlying call to crypto/rand ensures
// cryptographically secure random bytes.
func NewGuestToken() (string, error) {
	buf := make([]byte, GuestTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
