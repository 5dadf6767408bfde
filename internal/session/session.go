package session

import (
	"time"
)

// historyLimit bounds the stored non-system turns per session. The oldest
// turns are dropped first; a leading system turn is pinned.
const historyLimit = 10

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Slots holds the three pieces of information needed to run a flight search.
// A nil field means not yet collected.
type Slots struct {
	From *string `json:"from"`
	To   *string `json:"to"`
	Date *string `json:"date"`
}

func (s Slots) Complete() bool {
	return s.From != nil && s.To != nil && s.Date != nil
}

// State is the dialogue position, derived from which slots are filled.
type State string

const (
	StateAwaitingFrom State = "awaiting_from"
	StateAwaitingTo   State = "awaiting_to"
	StateAwaitingDate State = "awaiting_date"
	StateReady        State = "ready"
	StateCompleted    State = "completed"
)

type Session struct {
	ID        string    `json:"id"`
	History   []Message `json:"history"`
	Slots     Slots     `json:"slots"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		State:     StateAwaitingFrom,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendTurn adds a message and trims the history to the last historyLimit
// non-system turns.
func (s *Session) AppendTurn(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})

	var system []Message
	rest := s.History
	if len(rest) > 0 && rest[0].Role == "system" {
		system = rest[:1]
		rest = rest[1:]
	}
	if len(rest) > historyLimit {
		rest = rest[len(rest)-historyLimit:]
		s.History = append(append([]Message{}, system...), rest...)
	}
}

// Greeted reports whether the assistant has spoken in this session before.
func (s *Session) Greeted() bool {
	for _, m := range s.History {
		if m.Role == "assistant" {
			return true
		}
	}
	return false
}

// MergeSlots fills empty slots from extracted values. Filled slots are never
// cleared here; only ResetSlots clears them, after a successful search.
func (s *Session) MergeSlots(from, to, date *string) {
	if s.Slots.From == nil && from != nil {
		s.Slots.From = from
	}
	if s.Slots.To == nil && to != nil {
		s.Slots.To = to
	}
	if s.Slots.Date == nil && date != nil {
		s.Slots.Date = date
	}
	s.Recompute()
}

// ResetSlots clears all three slots after a completed search, forcing the
// next query to re-collect them.
func (s *Session) ResetSlots() {
	s.Slots = Slots{}
	s.State = StateCompleted
}

// Recompute derives the dialogue state from the current slot fills, in the
// fixed asking order from, to, date.
func (s *Session) Recompute() {
	switch {
	case s.Slots.From == nil:
		s.State = StateAwaitingFrom
	case s.Slots.To == nil:
		s.State = StateAwaitingTo
	case s.Slots.Date == nil:
		s.State = StateAwaitingDate
	default:
		s.State = StateReady
	}
}

// Clone returns a deep copy so callers outside the store's lock cannot race
// on the history slice.
func (s *Session) Clone() *Session {
	cp := *s
	cp.History = append([]Message{}, s.History...)
	if s.Slots.From != nil {
		v := *s.Slots.From
		cp.Slots.From = &v
	}
	if s.Slots.To != nil {
		v := *s.Slots.To
		cp.Slots.To = &v
	}
	if s.Slots.Date != nil {
		v := *s.Slots.Date
		cp.Slots.Date = &v
	}
	return &cp
}
