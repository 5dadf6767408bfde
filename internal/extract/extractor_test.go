package extract

import (
	"testing"
	"time"
)

// base is a fixed Tuesday so relative dates resolve deterministically.
var base = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	e := New()
	e.now = func() time.Time { return base }
	return e
}

func TestExtract_FromToWithDate(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("from London to Dubai next Monday")

	if !res.Match {
		t.Fatal("expected a match")
	}
	if res.Recognizer != "from_to" {
		t.Errorf("expected from_to, got %s", res.Recognizer)
	}
	if res.From == nil || *res.From != "London" {
		t.Errorf("expected from London, got %v", res.From)
	}
	if res.To == nil || *res.To != "Dubai" {
		t.Errorf("expected to Dubai, got %v", res.To)
	}
	if res.Date == nil {
		t.Fatal("expected a date")
	}
	d, err := time.Parse("2006-01-02", *res.Date)
	if err != nil {
		t.Fatalf("date not normalized: %q", *res.Date)
	}
	if d.Weekday() != time.Monday {
		t.Errorf("expected a Monday, got %s (%s)", d.Weekday(), *res.Date)
	}
	diff := d.Sub(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24
	if diff < 1 || diff > 7 {
		t.Errorf("expected next Monday within 1-7 days, got %v days", diff)
	}
}

func TestExtract_FromToCaseInsensitive(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("i need a flight from london to dubai")

	if !res.Match || res.From == nil || res.To == nil {
		t.Fatalf("expected both cities, got %+v", res)
	}
	if *res.From != "london" || *res.To != "dubai" {
		t.Errorf("expected london/dubai, got %s/%s", *res.From, *res.To)
	}
	if res.Date != nil {
		t.Errorf("expected no date, got %s", *res.Date)
	}
}

func TestExtract_MultiWordCities(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("from New York to Los Angeles tomorrow")

	if res.From == nil || *res.From != "New York" {
		t.Errorf("expected New York, got %v", res.From)
	}
	if res.To == nil || *res.To != "Los Angeles" {
		t.Errorf("expected Los Angeles, got %v", res.To)
	}
	if res.Date == nil || *res.Date != "2026-09-02" {
		t.Errorf("expected tomorrow 2026-09-02, got %v", res.Date)
	}
}

func TestExtract_BareTo(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("London to Dubai")

	if res.Recognizer != "bare_to" {
		t.Fatalf("expected bare_to, got %s (%+v)", res.Recognizer, res)
	}
	if *res.From != "London" || *res.To != "Dubai" {
		t.Errorf("expected London/Dubai, got %s/%s", *res.From, *res.To)
	}
}

func TestExtract_ToOnly(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("I'd like to fly to Paris on Friday")

	if res.Recognizer != "to_only" {
		t.Fatalf("expected to_only, got %s (%+v)", res.Recognizer, res)
	}
	if res.From != nil {
		t.Errorf("expected no origin, got %v", *res.From)
	}
	if res.To == nil || *res.To != "Paris" {
		t.Errorf("expected Paris, got %v", res.To)
	}
	if res.Date == nil {
		t.Fatal("expected a date for Friday")
	}
	d, _ := time.Parse("2006-01-02", *res.Date)
	if d.Weekday() != time.Friday {
		t.Errorf("expected a Friday, got %s", d.Weekday())
	}
}

func TestExtract_ToVerbNotCaptured(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("I want to fly somewhere warm")

	if res.Match {
		t.Errorf("lowercase word after to must not become a city: %+v", res)
	}
}

func TestExtract_DateOnly(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("next Monday")

	if res.Recognizer != "date_only" {
		t.Fatalf("expected date_only, got %s", res.Recognizer)
	}
	if res.From != nil || res.To != nil {
		t.Errorf("expected no cities, got %+v", res)
	}
	if res.Date == nil {
		t.Fatal("expected a date")
	}
}

func TestExtract_LoneCapital(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("Dubai")

	if res.Recognizer != "lone_capital" {
		t.Fatalf("expected lone_capital, got %s (%+v)", res.Recognizer, res)
	}
	if res.To == nil || *res.To != "Dubai" {
		t.Errorf("expected Dubai, got %v", res.To)
	}
	if res.Confidence >= 0.5 {
		t.Errorf("lone capital guess must stay low confidence, got %v", res.Confidence)
	}
}

func TestExtract_LoneCapitalAmbiguous(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract("maybe Paris or Rome")

	if res.Match {
		t.Errorf("two capitalized words must not produce a guess: %+v", res)
	}
}

func TestExtract_ChatterNotACity(t *testing.T) {
	e := newTestExtractor()

	for _, msg := range []string{"hey", "Hello", "Hi there", "Thanks"} {
		if res := e.Extract(msg); res.Match {
			t.Errorf("%q should extract nothing, got %+v", msg, res)
		}
	}
}

func TestExtract_DateWordStrippedFromCity(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		utterance string
		wantTo    string
		wantDate  string
	}{
		{"from London to Dubai tomorrow", "Dubai", "2026-09-02"},
		{"from London to Dubai 25/12", "Dubai", "2026-12-25"},
		{"from London to Dubai 2026-10-01", "Dubai", "2026-10-01"},
	}
	for _, tt := range tests {
		res := e.Extract(tt.utterance)
		if res.To == nil || *res.To != tt.wantTo {
			t.Errorf("%q: expected to %s, got %v", tt.utterance, tt.wantTo, res.To)
		}
		if res.Date == nil || *res.Date != tt.wantDate {
			t.Errorf("%q: expected date %s, got %v", tt.utterance, tt.wantDate, res.Date)
		}
	}
}

func TestExtract_Empty(t *testing.T) {
	e := newTestExtractor()

	if res := e.Extract("   "); res.Match {
		t.Errorf("expected no match for blank input, got %+v", res)
	}
}
