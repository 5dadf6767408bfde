package dialogue

import (
	"fmt"
	"strings"

	"github.com/skytrail/concierge/internal/flights"
	"github.com/skytrail/concierge/internal/session"
)

// Kind is what the policy wants to do next.
type Kind int

const (
	// KindAsk means at least one slot is missing; Reply carries the
	// clarifying question.
	KindAsk Kind = iota
	// KindSearch means all three slots are filled and the turn hands off
	// to the flight provider.
	KindSearch
)

type Action struct {
	Kind  Kind
	Reply string
}

const greeting = "Hi! I'm your travel assistant, I can find you flights in a few quick questions."

var questions = map[session.State]string{
	session.StateAwaitingFrom: "Which city will you be flying from?",
	session.StateAwaitingTo:   "Where would you like to fly to?",
	session.StateAwaitingDate: "What date would you like to travel?",
}

// Next picks the turn's action from the session's dialogue state. Missing
// slots are asked one at a time, origin first, so the user is never handed a
// wall of questions. The greeting is prefixed only before the assistant's
// first ever reply in the session.
func Next(sess *session.Session) Action {
	if sess.State == session.StateReady {
		return Action{Kind: KindSearch}
	}

	q, ok := questions[sess.State]
	if !ok {
		// Completed or unknown: the next query starts from scratch.
		q = questions[session.StateAwaitingFrom]
	}
	if !sess.Greeted() {
		q = greeting + " " + q
	}
	return Action{Kind: KindAsk, Reply: q}
}

// SearchSucceeded renders the result summary for a search with offers.
func SearchSucceeded(q flights.Query, offers []flights.Offer) string {
	return flights.FormatOffers(q, offers)
}

// SearchEmpty is the reply for a provider answer with zero itineraries.
// Slots stay filled so the caller can nudge just one of them.
func SearchEmpty(q flights.Query) string {
	return fmt.Sprintf(
		"I couldn't find any flights from %s to %s on %s. Would you like to try another date?",
		q.From, q.To, q.Date,
	)
}

// UnknownCities apologizes by name for cities the provider could not
// resolve, so the user knows what to correct.
func UnknownCities(cities []string) string {
	return fmt.Sprintf(
		"I'm sorry, I don't recognize %s yet. Could you try a major city nearby?",
		strings.Join(cities, " or "),
	)
}
