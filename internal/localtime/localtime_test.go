package localtime

import (
	"testing"
	"time"
)

func TestParseFormats(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"2025-11-21T07:35:00", "2025-11-21 07:35"},
		{"2025-11-21T07:35:00-05:00", "2025-11-21 07:35"},
		{"2025-11-21T07:35:00Z", "2025-11-21 07:35"},
		{"2025-11-21 07:35:00", "2025-11-21 07:35"},
	}
	for _, tc := range cases {
		got, err := Parse(tc.value)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.value, err)
		}
		if got.Format("2006-01-02 15:04") != tc.want {
			t.Fatalf("Parse(%q) = %v, want %s", tc.value, got, tc.want)
		}
	}

	if _, err := Parse("not a timestamp"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestHourMinuteIgnoresOffset(t *testing.T) {
	cases := []struct {
		value        string
		hour, minute int
	}{
		{"2025-11-21T07:35:00", 7, 35},
		{"2025-11-21T17:25:00-05:00", 17, 25},
		{"2025-11-21T00:05:00Z", 0, 5},
		{"2025-11-21 19:00:00", 19, 0},
	}
	for _, tc := range cases {
		h, m, ok := HourMinute(tc.value)
		if !ok {
			t.Fatalf("HourMinute(%q) not ok", tc.value)
		}
		if h != tc.hour || m != tc.minute {
			t.Fatalf("HourMinute(%q) = %d:%d, want %d:%d", tc.value, h, m, tc.hour, tc.minute)
		}
	}

	if _, _, ok := HourMinute("2025-11-21"); ok {
		t.Fatal("expected not ok for date-only value")
	}
}

func TestOffset(t *testing.T) {
	if got := Offset("2025-11-21T17:25:00-05:00"); got != "-05:00" {
		t.Fatalf("Offset = %q, want -05:00", got)
	}
	if got := Offset("2025-11-21T17:25:00Z"); got != "Z" {
		t.Fatalf("Offset = %q, want Z", got)
	}
	if got := Offset("2025-11-21T17:25:00"); got != "" {
		t.Fatalf("Offset = %q, want empty", got)
	}
}

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"PT2H15M", 135},
		{"PT45M", 45},
		{"PT3H", 180},
		{"PT1H15M", 75},
	}
	for _, tc := range cases {
		got, err := ParseISODuration(tc.value)
		if err != nil {
			t.Fatalf("ParseISODuration(%q) error: %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("ParseISODuration(%q) = %d, want %d", tc.value, got, tc.want)
		}
	}

	if _, err := ParseISODuration("P1W"); err == nil {
		t.Fatal("expected error for unsupported designator")
	}
	if _, err := ParseISODuration(""); err == nil {
		t.Fatal("expected error for empty value")
	}
}

func TestFormatters(t *testing.T) {
	if got := FormatDuration(440); got != "7h 20m" {
		t.Fatalf("FormatDuration(440) = %q, want 7h 20m", got)
	}
	if got := FormatDuration(75); got != "1h 15m" {
		t.Fatalf("FormatDuration(75) = %q, want 1h 15m", got)
	}
	if got := FormatDuration(5); got != "0h 05m" {
		t.Fatalf("FormatDuration(5) = %q, want 0h 05m", got)
	}

	at := time.Date(2025, 11, 21, 7, 35, 0, 0, time.UTC)
	if got := FormatClock(at); got != "07:35" {
		t.Fatalf("FormatClock = %q, want 07:35", got)
	}
}
