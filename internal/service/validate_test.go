package service

import (
	"testing"
	"time"
)

func TestValidationErrors(t *testing.T) {
	ve := ValidationErrors{}
	if err := ve.OrNil(); err != nil {
		t.Fatalf("empty collection should be nil, got %v", err)
	}

	ve.Add("title", "Title cannot be blank.")
	ve.Add("available_seats", "Available Seats must be between 1 and 8.")
	ve.Add("title", "Title is too long.")

	err := ve.OrNil()
	if err == nil {
		t.Fatal("non-empty collection should be an error")
	}
	if len(ve["title"]) != 2 {
		t.Fatalf("title should accumulate 2 messages, got %d", len(ve["title"]))
	}
	want := "available_seats: Available Seats must be between 1 and 8.; title: Title cannot be blank., Title is too long."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		shouldError bool
	}{
		{
			name:     "RFC3339",
			input:    "2026-06-20T18:30:00Z",
			expected: time.Date(2026, 6, 20, 18, 30, 0, 0, time.UTC),
		},
		{
			name:     "space separated",
			input:    "2026-06-20 18:30:00",
			expected: time.Date(2026, 6, 20, 18, 30, 0, 0, time.UTC),
		},
		{
			name:     "without seconds",
			input:    "2026-06-20 18:30",
			expected: time.Date(2026, 6, 20, 18, 30, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    "2026-06-20",
			expected: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "garbage",
			input:       "next friday",
			shouldError: true,
		},
		{
			name:        "empty",
			input:       "",
			shouldError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDateTime(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Fatalf("parseDateTime(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDateTime(%q) failed: %v", tt.input, err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("parseDateTime(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTrimPtr(t *testing.T) {
	if got := trimPtr(nil); got != nil {
		t.Errorf("trimPtr(nil) = %v, want nil", got)
	}
	empty := "   "
	if got := trimPtr(&empty); got != nil {
		t.Errorf("trimPtr(whitespace) = %v, want nil", got)
	}
	padded := "  Salad  "
	got := trimPtr(&padded)
	if got == nil || *got != "Salad" {
		t.Errorf("trimPtr(padded) = %v, want Salad", got)
	}
}

func TestValidateSeats(t *testing.T) {
	tests := []struct {
		seats int
		valid bool
	}{
		{seats: 0, valid: false},
		{seats: 1, valid: true},
		{seats: 4, valid: true},
		{seats: 8, valid: true},
		{seats: 9, valid: false},
		{seats: -1, valid: false},
	}
	for _, tt := range tests {
		ve := ValidationErrors{}
		validateSeats(ve, tt.seats)
		if got := len(ve) == 0; got != tt.valid {
			t.Errorf("validateSeats(%d): valid = %v, want %v", tt.seats, got, tt.valid)
		}
	}
}

func TestValidatePassengerCount(t *testing.T) {
	tests := []struct {
		count int
		valid bool
	}{
		{count: 0, valid: false},
		{count: 1, valid: true},
		{count: 6, valid: true},
		{count: 7, valid: false},
	}
	for _, tt := range tests {
		ve := ValidationErrors{}
		validatePassengerCount(ve, tt.count)
		if got := len(ve) == 0; got != tt.valid {
			t.Errorf("validatePassengerCount(%d): valid = %v, want %v", tt.count, got, tt.valid)
		}
	}
}

func TestValidateGuestStatus(t *testing.T) {
	for _, status := range []string{"pending", "accepted", "declined"} {
		ve := ValidationErrors{}
		validateGuestStatus(ve, status)
		if len(ve) != 0 {
			t.Errorf("status %q should be valid: %v", status, ve)
		}
	}
	for _, status := range []string{"", "maybe", "PENDING", "confirmed"} {
		ve := ValidationErrors{}
		validateGuestStatus(ve, status)
		if len(ve) == 0 {
			t.Errorf("status %q should be invalid", status)
		}
	}
}

func TestValidateEmailField(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		required bool
		valid    bool
	}{
		{name: "valid address", value: "anna@example.com", required: true, valid: true},
		{name: "display name form", value: "Anna <anna@example.com>", required: true, valid: true},
		{name: "missing at sign", value: "anna.example.com", required: true, valid: false},
		{name: "blank but required", value: "", required: true, valid: false},
		{name: "blank and optional", value: "", required: false, valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := ValidationErrors{}
			validateEmailField(ve, "email", "Email", tt.value, tt.required)
			if got := len(ve) == 0; got != tt.valid {
				t.Errorf("validateEmailField(%q, required=%v): valid = %v, want %v", tt.value, tt.required, got, tt.valid)
			}
		})
	}
}
