package utils

import (
	"strings"
	"testing"
)

func TestNewEventCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewEventCode()
		if err != nil {
			t.Fatalf("NewEventCode() error = %v", err)
		}
		if len(code) != EventCodeLength {
			t.Errorf("NewEventCode() length = %d, want %d", len(code), EventCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Errorf("NewEventCode() = %q contains %q outside alphabet", code, r)
			}
		}
		if seen[code] {
			t.Errorf("NewEventCode() produced duplicate %q within 100 draws", code)
		}
		seen[code] = true
	}
}

func TestNewGuestToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewGuestToken()
		if err != nil {
			t.Fatalf("NewGuestToken() error = %v", err)
		}
		if len(tok) != GuestTokenBytes*2 {
			t.Errorf("NewGuestToken() length = %d, want %d", len(tok), GuestTokenBytes*2)
		}
		if strings.ToLower(tok) != tok {
			t.Errorf("NewGuestToken() = %q, want lowercase hex", tok)
		}
		if seen[tok] {
			t.Errorf("NewGuestToken() produced duplicate %q", tok)
		}
		seen[tok] = true
	}
}
