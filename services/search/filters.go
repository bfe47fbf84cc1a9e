package search

import (
	"strconv"
	"strings"
	"time"

	"placewise/models"
)

// parseClock converts "HH:MM" to minutes since midnight. Returns -1 on
// malformed input.
func parseClock(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 24 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}

// IsOpenAt evaluates the opening-hours table at the given time. The second
// return value is false when the table carries no entry for that weekday, in
// which case the open/closed state is unknown.
func IsOpenAt(hours models.OpeningHours, t time.Time) (bool, bool) {
	if hours == nil {
		return false, false
	}
	day := strings.ToLower(t.Weekday().String())
	windows, ok := hours[day]
	if !ok {
		return false, false
	}
	now := t.Hour()*60 + t.Minute()
	for _, w := range windows {
		open := parseClock(w.Open)
		close := parseClock(w.Close)
		if open < 0 || close < 0 {
			continue
		}
		// "00:00" as a closing time means midnight.
		if close == 0 {
			close = 24 * 60
		}
		if close >= open {
			if now >= open && now < close {
				return true, true
			}
		} else {
			// Window spans midnight.
			if now >= open || now < close {
				return true, true
			}
		}
	}
	return false, true
}

// FilterByOpeningStatus keeps only results open at the given time. Results
// with an unknown status are retained: missing data must not hide a POI.
func FilterByOpeningStatus(results []models.POIResult, t time.Time) []models.POIResult {
	filtered := make([]models.POIResult, 0, len(results))
	for _, r := range results {
		open, known := IsOpenAt(r.OpeningHours, t)
		if !known || open {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// OpeningStatusText renders a templated open/closed line for one POI in the
// requested language.
func OpeningStatusText(poi *models.POIResult, t time.Time, language string) string {
	open, known := IsOpenAt(poi.OpeningHours, t)
	if language == LanguageDutch {
		switch {
		case !known:
			return poi.Title + ": openingstijden onbekend."
		case open:
			return poi.Title + " is nu geopend."
		default:
			return poi.Title + " is nu gesloten."
		}
	}
	switch {
	case !known:
		return "Opening hours for " + poi.Title + " are unknown."
	case open:
		return poi.Title + " is currently open."
	default:
		return poi.Title + " is currently closed."
	}
}
