package extract

import (
	"testing"
	"time"
)

func TestParseDate_ISORoundTrip(t *testing.T) {
	e := newTestExtractor()

	got := e.parseDate("2025-07-04")
	if got == nil || *got != "2025-07-04" {
		t.Errorf("expected 2025-07-04 to round-trip, got %v", got)
	}
}

func TestParseDate_SlashRollsToNextYear(t *testing.T) {
	e := newTestExtractor()

	// Base is 2026-09-01; 14/02 already passed this year.
	got := e.parseDate("14/02")
	if got == nil || *got != "2027-02-14" {
		t.Errorf("expected 2027-02-14, got %v", got)
	}
}

func TestParseDate_SlashInvalidDay(t *testing.T) {
	e := newTestExtractor()

	if got := e.parseDate("31/02"); got != nil {
		t.Errorf("expected nil for 31/02, got %v", *got)
	}
}

func TestParseDate_DropsTimeOfDay(t *testing.T) {
	e := newTestExtractor()

	got := e.parseDate("tomorrow at 5pm")
	if got == nil {
		t.Fatal("expected a date")
	}
	if *got != "2026-09-02" {
		t.Errorf("expected 2026-09-02, got %s", *got)
	}
	if _, err := time.Parse("2006-01-02", *got); err != nil {
		t.Errorf("date carries time of day: %s", *got)
	}
}

func TestParseDate_Nothing(t *testing.T) {
	e := newTestExtractor()

	if got := e.parseDate("no dates here"); got != nil {
		t.Errorf("expected nil, got %v", *got)
	}
}
