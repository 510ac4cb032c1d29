package discovery

import (
	"fmt"
	"net/url"
	"time"

	"kulturnorge/internal/catalog"
)

// Defaults supplies placeholder values for missing fields in AI responses.
// The literals are configuration, not contract.
type Defaults struct {
	Title       string
	Description string
	Date        string // fixed placeholder date, zero-padded ISO
	Venue       string
	City        string
	Price       string
	Tag         string // marker tag added to every discovered event
	TagCategory string // tag fallback when the response has no category
}

// StandardDefaults returns the placeholder values used in production.
func StandardDefaults() Defaults {
	return Defaults{
		Title:       "Uten tittel",
		Description: "Ingen beskrivelse tilgjengelig.",
		Date:        "2025-01-01",
		Venue:       "Ukjent sted",
		City:        "Ukjent by",
		Price:       "Se kilde",
		Tag:         "AI-funn",
		TagCategory: "Kultur",
	}
}

// Normalize converts raw AI records into catalog events, applying the
// placeholder defaults field by field. Identifiers combine a single per-call
// timestamp with the record's position, so records within one response never
// collide even when titles do; collisions across calls in the same
// millisecond remain a residual risk.
func Normalize(raw []PartialEvent, now time.Time, d Defaults) []catalog.Event {
	stamp := now.UnixMilli()

	events := make([]catalog.Event, 0, len(raw))
	for i, r := range raw {
		seed := r.Title
		if seed == "" {
			seed = "event"
		}
		tagCategory := r.Category
		if tagCategory == "" {
			tagCategory = d.TagCategory
		}

		events = append(events, catalog.Event{
			ID:          fmt.Sprintf("%s%d-%d", catalog.DiscoveredIDPrefix, stamp, i),
			Title:       orDefault(r.Title, d.Title),
			Description: orDefault(r.Description, d.Description),
			Date:        orDefault(r.Date, d.Date),
			Location:    orDefault(r.Venue, d.Venue),
			Venue:       r.Venue,
			City:        orDefault(r.City, d.City),
			Category:    catalog.NormalizeCategory(r.Category),
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", url.QueryEscape(seed)),
			Price:       orDefault(r.Price, d.Price),
			Tags:        []string{d.Tag, tagCategory},
			Link:        r.Link,
		})
	}
	return events
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
