package catalog

import (
	"sort"
	"strings"
	"time"
)

// View selects which slice of the catalog a listing shows.
type View string

const (
	ViewExplore   View = "explore"
	ViewFavorites View = "favorites"
	ViewForYou    View = "foryou"
)

// ParseView maps raw input to a View, defaulting to ViewExplore.
func ParseView(raw string) View {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case ViewFavorites:
		return ViewFavorites
	case ViewForYou:
		return ViewForYou
	default:
		return ViewExplore
	}
}

// Query carries the listing parameters for Visible.
type Query struct {
	Search      string
	City        string // FilterAll, empty, or an exact city
	Category    string // FilterAll, empty, or an exact category
	View        View
	FavoriteIDs map[string]struct{}
	Preferences []string // preferred categories, used by ViewForYou
	Today       string   // YYYY-MM-DD; empty means the current date
}

// Visible filters and orders events for display. It is a pure function of its
// inputs: the input slice is never mutated and no matches yields an empty
// result, never an error.
//
// Events dated before Today are dropped and the survivors are sorted
// ascending, both by plain string comparison. That matches the catalog's
// zero-padded ISO date convention; free-text dates sort unpredictably.
func Visible(events []Event, q Query) []Event {
	today := q.Today
	if today == "" {
		today = time.Now().Format("2006-01-02")
	}
	search := strings.ToLower(q.Search)

	result := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.Date < today {
			continue
		}
		switch q.View {
		case ViewFavorites:
			if _, ok := q.FavoriteIDs[ev.ID]; !ok {
				continue
			}
		case ViewForYou:
			if !hasPreference(q.Preferences, ev.Category) {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(ev.Title), search) &&
			!strings.Contains(strings.ToLower(ev.Description), search) {
			continue
		}
		if q.City != "" && q.City != FilterAll && ev.City != q.City {
			continue
		}
		if q.Category != "" && q.Category != FilterAll && string(ev.Category) != q.Category {
			continue
		}
		result = append(result, ev)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

func hasPreference(preferences []string, category Category) bool {
	for _, p := range preferences {
		if p == string(category) {
			return true
		}
	}
	return false
}
