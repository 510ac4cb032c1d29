package catalog

import "strings"

// Category classifies an event. The set is fixed; anything else normalizes to
// CategoryOther.
type Category string

const (
	CategoryConcert  Category = "Konsert"
	CategoryTheater  Category = "Teater"
	CategoryFestival Category = "Festival"
	CategoryArt      Category = "Kunst"
	CategoryComedy   Category = "Standup"
	CategorySports   Category = "Sport"
	CategoryOther    Category = "Annet"
)

// Categories lists the selectable categories in display order. CategoryOther
// is a normalization fallback, not a filter choice.
var Categories = []Category{
	CategoryConcert,
	CategoryTheater,
	CategoryFestival,
	CategoryArt,
	CategoryComedy,
	CategorySports,
}

// Cities lists the known cities. Events are expected to use one of these but
// it is not enforced.
var Cities = []string{
	"Oslo", "Bergen", "Trondheim", "Stavanger", "Kristiansand",
	"Tromsø", "Bodø", "Ålesund", "Drammen",
}

// FilterAll is the sentinel value meaning "no city/category restriction".
const FilterAll = "Alle"

// DiscoveredIDPrefix marks events produced by the discovery adapter. Seed
// events use stable short identifiers instead.
const DiscoveredIDPrefix = "ai-"

// Event is a cultural happening. Date is kept as text and compared
// lexicographically; the catalog convention is zero-padded ISO (YYYY-MM-DD).
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Venue       string   `json:"venue,omitempty"`
	City        string   `json:"city"`
	Category    Category `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Price       string   `json:"price,omitempty"`
	Organizer   string   `json:"organizer,omitempty"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link,omitempty"`
}

// Discovered reports whether the event came from the discovery adapter.
func (e Event) Discovered() bool {
	return strings.HasPrefix(e.ID, DiscoveredIDPrefix)
}

// GroundingSource is a citation returned alongside discovered events. Held
// only until the next discovery call; never persisted.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// NormalizeCategory maps raw category text to a known Category. Unrecognized
// input, including empty text, maps to CategoryOther.
func NormalizeCategory(raw string) Category {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	return CategoryOther
}
