package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	reISODate   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	reSlashDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)
)

// parseDate finds the first calendar date in text and normalizes it to
// YYYY-MM-DD, dropping any time of day. Explicit numeric forms are tried
// before the natural-language parser; dd/mm without a year resolves to the
// next such date from today. Returns nil when nothing parses.
func (e *Extractor) parseDate(text string) *string {
	if text == "" {
		return nil
	}
	now := e.now()

	if m := reISODate.FindStringSubmatch(text); m != nil {
		if _, err := time.Parse("2006-01-02", m[1]); err == nil {
			return &m[1]
		}
	}

	if m := reSlashDate.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if d := nextCalendarDate(now, day, month); d != nil {
			return d
		}
	}

	r, err := e.parser.Parse(text, now)
	if err != nil || r == nil {
		return nil
	}
	out := r.Time.Format("2006-01-02")
	return &out
}

// nextCalendarDate resolves a day/month pair to this year, rolling to next
// year when the date already passed.
func nextCalendarDate(now time.Time, day, month int) *string {
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return nil
	}
	d := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		return nil // e.g. 31/02
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		d = time.Date(now.Year()+1, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if d.Day() != day {
			return nil
		}
	}
	out := fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
	return &out
}
