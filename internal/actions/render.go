package actions

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var cityTitleCaser = cases.Title(language.Italian)

// displayCity normalizes a slot value for display ("milano" → "Milano").
func displayCity(city string) string {
	return cityTitleCaser.String(strings.TrimSpace(city))
}

// emoji maps an Italian condition description to a weather emoji.
func emoji(description string) string {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "sole") || strings.Contains(d, "sereno"):
		return "☀️"
	case strings.Contains(d, "nuvol"):
		return "☁️"
	case strings.Contains(d, "pioggia") || strings.Contains(d, "rain"):
		return "🌧️"
	case strings.Contains(d, "neve"):
		return "❄️"
	case strings.Contains(d, "temporale") || strings.Contains(d, "thunder"):
		return "⛈️"
	default:
		return "🌥️"
	}
}

// capitalizeFirst upper-cases the first rune only, leaving the rest as is.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// humanJoin joins items with commas and a final "e"-style separator,
// skipping empty strings.
func humanJoin(items []string, sep, lastSep string) string {
	var kept []string
	for _, it := range items {
		if it != "" {
			kept = append(kept, it)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	default:
		return strings.Join(kept[:len(kept)-1], sep) + lastSep + kept[len(kept)-1]
	}
}
