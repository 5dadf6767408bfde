package flights

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFlyScraper_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flights/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "fs-key" {
			t.Errorf("expected x-api-key header, got %q", got)
		}
		q := r.URL.Query()
		// Free-text cities go through untouched, no code lookup.
		if q.Get("origin") != "Reykjavik" || q.Get("destination") != "Wellington" {
			t.Errorf("unexpected cities: %s -> %s", q.Get("origin"), q.Get("destination"))
		}
		if q.Get("date") != "2026-09-07" || q.Get("cabinClass") != "economy" {
			t.Errorf("unexpected params: %v", q)
		}

		fmt.Fprint(w, `{"flights":[
			{"price":{"amount":999.99,"currency":"USD"},"departureTime":"2026-09-07T06:00:00Z","arrivalTime":"2026-09-08T14:30:00Z","airline":"Icelandair"}
		]}`)
	}))
	defer server.Close()

	f := NewFlyScraper("fs-key", server.URL, discardLogger())

	offers, err := f.Search(context.Background(), Query{From: "Reykjavik", To: "Wellington", Date: "2026-09-07"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	if offers[0].Price != 999.99 || offers[0].Currency != "USD" || offers[0].Carrier != "Icelandair" {
		t.Errorf("unexpected offer: %+v", offers[0])
	}
}

func TestFlyScraper_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"bad key"}`)
	}))
	defer server.Close()

	f := NewFlyScraper("bad", server.URL, discardLogger())

	if _, err := f.Search(context.Background(), Query{From: "A", To: "B", Date: "2026-09-07"}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestResolveCity(t *testing.T) {
	tests := []struct {
		in   string
		code string
		ok   bool
	}{
		{"London", "LON", true},
		{"LONDON", "LON", true},
		{"new york", "NYC", true},
		{" New  York ", "NYC", true},
		{"Atlantis", "", false},
	}
	for _, tt := range tests {
		code, ok := ResolveCity(tt.in)
		if ok != tt.ok || code != tt.code {
			t.Errorf("ResolveCity(%q) = %q, %v; want %q, %v", tt.in, code, ok, tt.code, tt.ok)
		}
	}
}

func TestFormatOffers(t *testing.T) {
	q := Query{From: "London", To: "Dubai", Date: "2026-09-07"}
	offers := []Offer{{Price: 182.5, Currency: "EUR", Carrier: "EK"}}

	got := FormatOffers(q, offers)

	for _, want := range []string{"London", "Dubai", "2026-09-07", "182.50 EUR", "EK"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}
