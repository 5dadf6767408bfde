package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skytrail/concierge/internal/dialogue"
	"github.com/skytrail/concierge/internal/events"
	"github.com/skytrail/concierge/internal/extract"
	"github.com/skytrail/concierge/internal/flights"
	"github.com/skytrail/concierge/internal/llm"
	"github.com/skytrail/concierge/internal/session"
)

// ErrInvalidInput marks a turn rejected before any session mutation.
var ErrInvalidInput = errors.New("prompt and sessionId are required")

// LLM generates the conversational wrapper around the policy's question.
// Optional; without one the canned question is the reply.
type LLM interface {
	Complete(ctx context.Context, messages []llm.Message, temperature float64, maxTokens int) (string, error)
}

// Handler runs one chat turn: load session, extract slots, decide, search
// when ready, reply.
type Handler struct {
	store     session.Store
	extractor *extract.Extractor
	provider  flights.Provider
	llm       LLM
	events    *events.Publisher
	logger    *slog.Logger
}

func New(store session.Store, ext *extract.Extractor, provider flights.Provider, model LLM, pub *events.Publisher, logger *slog.Logger) *Handler {
	return &Handler{
		store:     store,
		extractor: ext,
		provider:  provider,
		llm:       model,
		events:    pub,
		logger:    logger,
	}
}

// Handle processes one utterance for a session and returns the assistant
// reply. The whole turn runs under the store's per-key lock and commits only
// on success; an upstream failure leaves the session exactly as it was.
func (h *Handler) Handle(ctx context.Context, sessionID, utterance string) (string, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(utterance) == "" {
		return "", ErrInvalidInput
	}

	var reply string
	_, err := h.store.Update(ctx, sessionID, func(sess *session.Session) error {
		if len(sess.History) == 0 {
			sess.AppendTurn("system", systemPrompt)
		}
		sess.AppendTurn("user", utterance)

		res := h.extractor.Extract(utterance)
		if res.Match {
			h.logger.Debug("slots extracted",
				"session_id", sessionID,
				"recognizer", res.Recognizer,
				"confidence", res.Confidence,
			)
		}
		sess.MergeSlots(res.From, res.To, res.Date)

		action := dialogue.Next(sess)
		var err error
		switch action.Kind {
		case dialogue.KindSearch:
			reply, err = h.search(ctx, sess)
		default:
			reply, err = h.ask(ctx, sess, action.Reply)
		}
		if err != nil {
			return err
		}

		sess.AppendTurn("assistant", reply)
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

// ask produces the clarifying reply for a turn with missing slots. With a
// language model wired, the model phrases it around the conversation;
// otherwise the canned question goes out as is.
func (h *Handler) ask(ctx context.Context, sess *session.Session, question string) (string, error) {
	if h.llm == nil {
		return question, nil
	}

	msgs := []llm.Message{{Role: "system", Content: fmt.Sprintf(rephrasePrompt, slotSummary(sess.Slots), question)}}
	for _, m := range sess.History {
		if m.Role == "system" {
			continue
		}
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := h.llm.Complete(ctx, msgs, 0.45, 300)
	if err != nil {
		return "", fmt.Errorf("llm reply: %w", err)
	}
	return reply, nil
}

// search runs the provider call for a fully collected query. Slots reset
// only on success with results; empty results and unresolved cities keep the
// slots so the user can refine a single detail.
func (h *Handler) search(ctx context.Context, sess *session.Session) (string, error) {
	q := flights.Query{From: *sess.Slots.From, To: *sess.Slots.To, Date: *sess.Slots.Date}

	offers, err := h.provider.Search(ctx, q)
	if err != nil {
		var unknownErr *flights.UnknownCityError
		if errors.As(err, &unknownErr) {
			return dialogue.UnknownCities(unknownErr.Cities), nil
		}
		h.logger.Error("flight search failed",
			"session_id", sess.ID,
			"from", q.From,
			"to", q.To,
			"date", q.Date,
			"error", err,
		)
		h.publish(events.SubjectSearchFailed, events.NewSearchEvent(sess.ID, q.From, q.To, q.Date, 0))
		return "", fmt.Errorf("flight search: %w", err)
	}

	h.publish(events.SubjectSearchCompleted, events.NewSearchEvent(sess.ID, q.From, q.To, q.Date, len(offers)))

	if len(offers) == 0 {
		return dialogue.SearchEmpty(q), nil
	}

	sess.ResetSlots()
	return dialogue.SearchSucceeded(q, offers), nil
}

func (h *Handler) publish(subject string, evt events.SearchEvent) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(subject, evt); err != nil {
		h.logger.Warn("failed to publish search event", "subject", subject, "error", err)
	}
}

func slotSummary(s session.Slots) string {
	part := func(name string, v *string) string {
		if v == nil {
			return name + " unknown"
		}
		return name + " " + *v
	}
	return strings.Join([]string{
		part("origin", s.From),
		part("destination", s.To),
		part("date", s.Date),
	}, ", ")
}
