package flights

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Query is a fully collected flight search: free-text city names and a
// YYYY-MM-DD outbound date. Providers resolve or pass through the city names
// as their API requires.
type Query struct {
	From string
	To   string
	Date string
}

// Offer is the one internal result record every provider maps into,
// insulating the dialogue layer from provider schema drift.
type Offer struct {
	Price         float64
	Currency      string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Carrier       string
}

// Provider runs one outbound search. An empty slice with a nil error means
// the provider answered and found no flights; an error means transport or
// API failure. No retries at this layer.
type Provider interface {
	Search(ctx context.Context, q Query) ([]Offer, error)
}

// resultLimit caps offers returned to the conversation.
const resultLimit = 3

// UnknownCityError reports city names the code table could not resolve.
// Surfaced to the user by name so they can correct the spelling.
type UnknownCityError struct {
	Cities []string
}

func (e *UnknownCityError) Error() string {
	return fmt.Sprintf("unknown city: %s", strings.Join(e.Cities, ", "))
}
