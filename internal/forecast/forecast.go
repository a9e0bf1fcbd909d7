// Package forecast periodizes the provider's 3-hour samples into
// morning/afternoon/evening views of a single local day.
package forecast

import (
	"time"

	"github.com/climabot/meteo-actions/internal/models"
)

// Sample pairs a forecast entry with its timestamp in the target
// location's local time.
type Sample struct {
	Local time.Time
	Entry models.ForecastEntry
}

// ToLocal shifts an instant by the location's UTC offset.
func ToLocal(tzOffsetSeconds int, now time.Time) time.Time {
	return now.UTC().Add(time.Duration(tzOffsetSeconds) * time.Second)
}

// DayEntries returns the samples falling on the target local date,
// ordered ascending. Entries arrive sorted from the provider; the
// filter preserves that order.
func DayEntries(f models.Forecast, target time.Time) []Sample {
	var out []Sample
	for _, e := range f.List {
		local := ToLocal(f.City.Timezone, time.Unix(e.Dt, 0))
		if sameDate(local, target) {
			out = append(out, Sample{Local: local, Entry: e})
		}
	}
	return out
}

// DayParts splits a day's samples into the narrative buckets:
// morning (<12h), afternoon (12–17h), evening (>=18h).
func DayParts(samples []Sample) (morning, afternoon, evening []Sample) {
	for _, s := range samples {
		switch h := s.Local.Hour(); {
		case h < 12:
			morning = append(morning, s)
		case h < 18:
			afternoon = append(afternoon, s)
		default:
			evening = append(evening, s)
		}
	}
	return morning, afternoon, evening
}

// Summary describes one day part from its first sample.
type Summary struct {
	Description string
	Temp        float64
	Humidity    int
	Wind        float64
}

// FirstSummary summarizes a non-empty bucket from its earliest sample.
func FirstSummary(group []Sample) Summary {
	e := group[0].Entry
	return Summary{
		Description: e.Description(),
		Temp:        e.Main.Temp,
		Humidity:    e.Main.Humidity,
		Wind:        e.Wind.Speed,
	}
}

// Segment is an averaged view of a day part.
type Segment struct {
	Name     string
	AvgTemp  float64
	AvgWind  float64
	Dominant string
}

var segmentBounds = []struct {
	name     string
	from, to int // local hour, from inclusive, to exclusive
}{
	{"Mattino", 6, 12},
	{"Pomeriggio", 12, 18},
	{"Sera", 18, 24},
}

// AveragedSegments buckets samples into Mattino/Pomeriggio/Sera and
// averages temperature and wind, picking the most frequent condition
// description per segment. Empty segments are omitted.
func AveragedSegments(samples []Sample) []Segment {
	var out []Segment
	for _, b := range segmentBounds {
		var (
			temps, winds float64
			n            int
			descs        []string
		)
		for _, s := range samples {
			h := s.Local.Hour()
			if h < b.from || h >= b.to {
				continue
			}
			temps += s.Entry.Main.Temp
			winds += s.Entry.Wind.Speed
			n++
			for _, w := range s.Entry.Weather {
				descs = append(descs, w.Description)
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, Segment{
			Name:     b.name,
			AvgTemp:  temps / float64(n),
			AvgWind:  winds / float64(n),
			Dominant: dominant(descs),
		})
	}
	return out
}

// Nearest picks the sample whose local hour is closest to the desired
// hour. The earliest of equally distant samples wins.
func Nearest(samples []Sample, hour int) (Sample, bool) {
	if len(samples) == 0 {
		return Sample{}, false
	}
	best := samples[0]
	bestDist := distance(best.Local.Hour(), hour)
	for _, s := range samples[1:] {
		if d := distance(s.Local.Hour(), hour); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}

// dominant returns the most frequent string; ties resolve to the one
// encountered first.
func dominant(items []string) string {
	if len(items) == 0 {
		return ""
	}
	counts := make(map[string]int, len(items))
	best, bestCount := items[0], 0
	for _, it := range items {
		counts[it]++
		if counts[it] > bestCount {
			best, bestCount = it, counts[it]
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
