package model

import (
	"testing"
	"time"
)

func TestDateRoundTrip(t *testing.T) {
	cases := []string{
		"2025.01.13 - 03:13:19",
		"2024.12.31 - 23:59:59",
		"2025.06.01 - 00:00:00",
	}

	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			parsed, err := ParseDate(s)
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", s, err)
			}
			if got := FormatDate(parsed); got != s {
				t.Errorf("FormatDate(ParseDate(%q)) = %q, want %q", s, got, s)
			}
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	cases := []string{
		"",
		"2025-01-13 03:13:19",
		"13.01.2025 - 03:13:19",
		"not a date",
	}

	for _, s := range cases {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", s)
		}
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 1, 13, 3, 13, 19, 0, time.UTC)
	if got := FormatDate(ts); got != "2025.01.13 - 03:13:19" {
		t.Errorf("FormatDate = %q, want %q", got, "2025.01.13 - 03:13:19")
	}
}

func TestPriceObservation_NilSections(t *testing.T) {
	obs := PriceObservation{
		ItemName: "Spy Agaric",
		Date:     time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
		DeltaTON: 0.02,
		Floor:    &QuotedPrice{TON: 0.5, USD: 2.0, Star: 100, RUB: 150},
	}

	if obs.Average != nil {
		t.Errorf("Average = %+v, want nil for an omitted section", obs.Average)
	}
	if obs.Floor.TON != 0.5 {
		t.Errorf("Floor.TON = %v, want 0.5", obs.Floor.TON)
	}
}
