package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeMarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    Time
		expected string
	}{
		{
			name:     "zero milliseconds",
			input:    NewTime(time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)),
			expected: `"2026-08-15T10:30:00.000Z"`,
		},
		{
			name:     "with milliseconds",
			input:    NewTime(time.Date(2026, 8, 15, 10, 30, 0, 123000000, time.UTC)),
			expected: `"2026-08-15T10:30:00.123Z"`,
		},
		{
			name:     "non-UTC timezone converted",
			input:    NewTime(time.Date(2026, 8, 15, 12, 30, 0, 0, time.FixedZone("CET", 2*60*60))),
			expected: `"2026-08-15T10:30:00.000Z"`,
		},
		{
			name:     "nanoseconds truncated to millis",
			input:    NewTime(time.Date(2026, 8, 15, 10, 30, 0, 123456789, time.UTC)),
			expected: `"2026-08-15T10:30:00.123Z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.expected {
				t.Fatalf("expected %s, got %s", tt.expected, string(data))
			}
		})
	}
}

func TestTimeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "RFC3339 with Z",
			input:    `"2026-08-15T10:30:00Z"`,
			expected: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 with milliseconds",
			input:    `"2026-08-15T10:30:00.123Z"`,
			expected: time.Date(2026, 8, 15, 10, 30, 0, 123000000, time.UTC),
		},
		{
			name:     "RFC3339 with positive offset",
			input:    `"2026-08-15T12:30:00+02:00"`,
			expected: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result Time
			if err := json.Unmarshal([]byte(tt.input), &result); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.UTC().Equal(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, result.UTC())
			}
		})
	}
}

func TestTimeUnmarshalJSONInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a date", `"not-a-date"`},
		{"empty string", `""`},
		{"number", `12345`},
		{"invalid format", `"2026/08/15 10:30:00"`},
		{"missing timezone", `"2026-08-15T10:30:00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result Time
			if err := json.Unmarshal([]byte(tt.input), &result); err == nil {
				t.Fatalf("expected error for input %s", tt.input)
			}
		})
	}
}

func TestTimeUnmarshalJSONPreservesExistingOnNull(t *testing.T) {
	result := NewTime(time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC))
	original := result.Time

	if err := json.Unmarshal([]byte("null"), &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(original) {
		t.Fatalf("null should preserve existing value, got %v", result)
	}
}

func TestTimeInStruct(t *testing.T) {
	type Run struct {
		ID        string `json:"id"`
		StartedAt Time   `json:"startedAt"`
	}

	run := Run{
		ID:        "run-001",
		StartedAt: NewTime(time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)),
	}

	data, err := json.Marshal(run)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"id":"run-001","startedAt":"2026-08-15T10:30:00.000Z"}`
	if string(data) != expected {
		t.Fatalf("expected %s, got %s", expected, string(data))
	}

	var parsed Run
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.StartedAt.Equal(run.StartedAt.Time) {
		t.Fatalf("expected StartedAt %v, got %v", run.StartedAt, parsed.StartedAt)
	}
}

func TestTimeOmitemptyPointer(t *testing.T) {
	type Op struct {
		Key       string `json:"key"`
		LastRunAt *Time  `json:"lastRunAt,omitempty"`
	}

	data, err := json.Marshal(Op{Key: "auction_com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"key":"auction_com"}` {
		t.Fatalf("expected omitted field, got %s", string(data))
	}
}

func TestNow(t *testing.T) {
	before := time.Now()
	result := Now()
	after := time.Now()

	if result.Before(before) || result.After(after) {
		t.Fatal("Now() returned time outside expected range")
	}
}

func TestRFC3339MillisFormat(t *testing.T) {
	formatted := time.Now().UTC().Format(RFC3339Millis)

	if len(formatted) != 24 {
		t.Fatalf("formatted time should be 24 chars, got %d: %s", len(formatted), formatted)
	}
	if formatted[19] != '.' || formatted[23] != 'Z' {
		t.Fatalf("unexpected shape: %s", formatted)
	}
}
