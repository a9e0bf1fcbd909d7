// Package timeslot resolves Italian date phrases ("domani", "martedì",
// "stasera") into concrete calendar dates and optional time-of-day hints.
package timeslot

import (
	"strings"
	"time"
)

// daysIT is indexed Monday=0, matching the Italian week.
var daysIT = [7]string{"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato", "Domenica"}

var weekdayLookup = map[string]int{}

func init() {
	for i, d := range daysIT {
		weekdayLookup[fold(d)] = i
	}
}

// fold lowercases the phrase and strips the accents that show up in
// Italian weekday names, so "lunedi" and "Lunedì" match alike.
var accentFolder = strings.NewReplacer("à", "a", "è", "e", "é", "e", "ì", "i", "ò", "o", "ù", "u")

func fold(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// timeHints maps time-of-day wording to a representative local hour.
var timeHints = []struct {
	key  string
	hour int
}{
	{"stamattina", 9},
	{"mattina", 9},
	{"mattino", 9},
	{"pomeriggio", 15},
	{"stasera", 21},
	{"sera", 21},
	{"stanotte", 23},
	{"notte", 23},
}

// IsNow reports whether the phrase asks for current conditions rather
// than a forecast.
func IsNow(phrase string) bool {
	p := fold(phrase)
	if p == "" || p == "oggi" {
		return true
	}
	return strings.Contains(p, "adesso") || strings.Contains(p, "ora")
}

// ResolveDate maps the phrase to a calendar date relative to today.
// Weekday names resolve to the next occurrence strictly after today;
// unrecognized phrases resolve to today itself.
func ResolveDate(phrase string, today time.Time) time.Time {
	p := fold(phrase)
	today = truncateToDay(today)

	for key, wd := range weekdayLookup {
		if strings.Contains(p, key) {
			delta := (wd - mondayIndex(today.Weekday()) + 7) % 7
			if delta == 0 {
				delta = 7
			}
			return today.AddDate(0, 0, delta)
		}
	}

	// "dopodomani" contains "domani", so it must be checked first.
	if strings.Contains(p, "dopodomani") {
		return today.AddDate(0, 0, 2)
	}
	if strings.Contains(p, "domani") {
		return today.AddDate(0, 0, 1)
	}
	return today
}

// DesiredHour extracts a time-of-day hint from the phrase, if present.
func DesiredHour(phrase string) (int, bool) {
	p := fold(phrase)
	for _, h := range timeHints {
		if strings.Contains(p, h.key) {
			return h.hour, true
		}
	}
	return 0, false
}

// DayName returns the capitalized Italian name of the date's weekday.
func DayName(t time.Time) string {
	return daysIT[mondayIndex(t.Weekday())]
}

func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
