package dialogue

import (
	"strings"
	"testing"

	"github.com/skytrail/concierge/internal/flights"
	"github.com/skytrail/concierge/internal/session"
)

func strptr(s string) *string { return &s }

func TestNext_AsksOneSlotAtATime(t *testing.T) {
	tests := []struct {
		name     string
		slots    session.Slots
		wantWord string
	}{
		{"nothing filled asks origin", session.Slots{}, "flying from"},
		{"origin filled asks destination", session.Slots{From: strptr("London")}, "fly to"},
		{"cities filled asks date", session.Slots{From: strptr("London"), To: strptr("Dubai")}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New("s")
			sess.Slots = tt.slots
			sess.Recompute()

			action := Next(sess)

			if action.Kind != KindAsk {
				t.Fatalf("expected ask, got %v", action.Kind)
			}
			if !strings.Contains(action.Reply, tt.wantWord) {
				t.Errorf("expected question about %q, got %q", tt.wantWord, action.Reply)
			}
		})
	}
}

func TestNext_GreetsOnlyOnce(t *testing.T) {
	sess := session.New("s")

	first := Next(sess)
	if !strings.Contains(first.Reply, "travel assistant") {
		t.Errorf("first reply should greet, got %q", first.Reply)
	}

	sess.AppendTurn("assistant", first.Reply)
	second := Next(sess)
	if strings.Contains(second.Reply, "travel assistant") {
		t.Errorf("second reply should not greet again, got %q", second.Reply)
	}
}

func TestNext_SearchWhenReady(t *testing.T) {
	sess := session.New("s")
	sess.MergeSlots(strptr("London"), strptr("Dubai"), strptr("2026-09-07"))

	action := Next(sess)

	if action.Kind != KindSearch {
		t.Fatalf("expected search, got %v with reply %q", action.Kind, action.Reply)
	}
}

func TestNext_PartialSlotsNeverSearch(t *testing.T) {
	combos := []session.Slots{
		{From: strptr("London")},
		{To: strptr("Dubai")},
		{Date: strptr("2026-09-07")},
		{From: strptr("London"), To: strptr("Dubai")},
		{From: strptr("London"), Date: strptr("2026-09-07")},
		{To: strptr("Dubai"), Date: strptr("2026-09-07")},
	}
	for _, slots := range combos {
		sess := session.New("s")
		sess.Slots = slots
		sess.Recompute()
		if action := Next(sess); action.Kind == KindSearch {
			t.Errorf("partial slots %+v must not trigger a search", slots)
		}
	}
}

func TestSearchEmpty_NamesTheQuery(t *testing.T) {
	reply := SearchEmpty(flights.Query{From: "London", To: "Dubai", Date: "2026-09-07"})
	for _, want := range []string{"London", "Dubai", "2026-09-07"} {
		if !strings.Contains(reply, want) {
			t.Errorf("empty-result reply missing %q: %s", want, reply)
		}
	}
}

func TestUnknownCities(t *testing.T) {
	reply := UnknownCities([]string{"Atlantis", "Asgard"})
	if !strings.Contains(reply, "Atlantis") || !strings.Contains(reply, "Asgard") {
		t.Errorf("reply must name the unresolved cities: %s", reply)
	}
}
