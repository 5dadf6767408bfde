package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Result is a tagged extraction outcome. Match reports whether any recognizer
// fired; the slot fields are nil when that piece was not present in the
// utterance.
type Result struct {
	Match      bool
	From       *string
	To         *string
	Date       *string
	Recognizer string
	Confidence float64
}

// Extractor turns a free-text utterance into a partial slot record. It never
// fails; an utterance with nothing recognizable yields a zero Result.
type Extractor struct {
	parser *when.Parser
	now    func() time.Time
}

func New() *Extractor {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Extractor{parser: w, now: time.Now}
}

var (
	// "from CITY to CITY ...": free-text city names, case-insensitive.
	reFromTo = regexp.MustCompile(`(?i)\bfrom\s+(.+?)\s+to\s+(.+)$`)

	// "CITY to CITY": capitalized words on both sides, no "from".
	reBareTo = regexp.MustCompile(`\b([A-Z][\w'-]*(?:\s+[A-Z][\w'-]*)*)\s+to\s+([A-Z].*)$`)

	// "to CITY": destination only, capitalized so that "want to fly"
	// never captures a verb as a city.
	reToOnly = regexp.MustCompile(`\b[Tt]o\s+([A-Z].*)$`)

	reCapWord = regexp.MustCompile(`\b[A-Z][\w'-]*\b`)
)

// chatterWords are capitalized words that are never a destination guess.
var chatterWords = map[string]bool{
	"i": true, "i'm": true, "i'd": true, "hi": true, "hey": true,
	"hello": true, "ok": true, "okay": true, "yes": true, "no": true,
	"please": true, "thanks": true, "thank": true, "a": true, "the": true,
	"what": true, "when": true, "where": true, "can": true, "could": true,
	"book": true, "find": true, "flight": true, "flights": true,
}

// Extract runs the recognizer chain in order, first match wins. The single
// capitalized word fallback only fires when every directional pattern failed
// and the message holds exactly one candidate word.
func (e *Extractor) Extract(utterance string) Result {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return Result{}
	}

	if m := reFromTo.FindStringSubmatch(text); m != nil {
		from := cleanCity(m[1])
		to, dateText := splitCityDate(m[2])
		if from != "" && to != "" {
			return Result{
				Match:      true,
				From:       &from,
				To:         &to,
				Date:       e.parseDate(dateText),
				Recognizer: "from_to",
				Confidence: 0.9,
			}
		}
	}

	if m := reBareTo.FindStringSubmatch(text); m != nil {
		from := cleanCity(m[1])
		to, dateText := splitCityDate(m[2])
		if from != "" && to != "" && !isDateWord(from) {
			return Result{
				Match:      true,
				From:       &from,
				To:         &to,
				Date:       e.parseDate(dateText),
				Recognizer: "bare_to",
				Confidence: 0.7,
			}
		}
	}

	if m := reToOnly.FindStringSubmatch(text); m != nil {
		to, dateText := splitCityDate(m[1])
		if to != "" {
			return Result{
				Match:      true,
				To:         &to,
				Date:       e.parseDate(dateText),
				Recognizer: "to_only",
				Confidence: 0.5,
			}
		}
	}

	// No directional preposition matched: a date alone still counts.
	if date := e.parseDate(text); date != nil {
		res := Result{
			Match:      true,
			Date:       date,
			Recognizer: "date_only",
			Confidence: 0.5,
		}
		if to := e.loneCapital(text); to != nil {
			res.To = to
			res.Recognizer = "lone_capital"
			res.Confidence = 0.3
		}
		return res
	}

	if to := e.loneCapital(text); to != nil {
		return Result{
			Match:      true,
			To:         to,
			Recognizer: "lone_capital",
			Confidence: 0.3,
		}
	}

	return Result{}
}

// loneCapital guesses the destination from a message holding exactly one
// capitalized word that is neither chatter nor a date token. Inherently
// lossy, kept behind the exactly-one rule.
func (e *Extractor) loneCapital(text string) *string {
	var candidates []string
	for _, w := range reCapWord.FindAllString(text, -1) {
		lower := strings.ToLower(w)
		if chatterWords[lower] || isDateWord(w) {
			continue
		}
		candidates = append(candidates, w)
	}
	if len(candidates) != 1 {
		return nil
	}
	return &candidates[0]
}

// splitCityDate separates a captured destination from trailing date-like
// tokens ("Dubai next Monday" -> "Dubai", "next Monday"). Tokens from the
// first date word onward belong to the date search substring; a trailing
// "from ..." clause is dropped from the city without becoming date text.
func splitCityDate(raw string) (city, dateText string) {
	tokens := strings.Fields(raw)
	cut := len(tokens)
	for i, tok := range tokens {
		if isDateWord(tok) || (strings.EqualFold(tok, "on") && i+1 < len(tokens)) {
			cut = i
			break
		}
		if strings.EqualFold(tok, "from") {
			return cleanCity(strings.Join(tokens[:i], " ")), ""
		}
	}
	city = cleanCity(strings.Join(tokens[:cut], " "))
	dateText = strings.Join(tokens[cut:], " ")
	return city, dateText
}

func cleanCity(s string) string {
	return strings.Trim(strings.TrimSpace(s), ",.!?")
}

var reNumericDate = regexp.MustCompile(`^\d{1,2}/\d{1,2}$|^\d{4}-\d{2}-\d{2}$`)

var dateWords = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"today": true, "tomorrow": true, "tonight": true, "next": true, "this": true,
	"january": true, "february": true, "march": true, "april": true, "may": true,
	"june": true, "july": true, "august": true, "september": true,
	"october": true, "november": true, "december": true,
}

func isDateWord(tok string) bool {
	tok = strings.Trim(strings.ToLower(tok), ",.!?")
	return dateWords[tok] || reNumericDate.MatchString(tok)
}
