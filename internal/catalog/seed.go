package catalog

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed seed.toml
var seedTOML []byte

type seedEvent struct {
	ID          string   `toml:"id"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Date        string   `toml:"date"`
	Location    string   `toml:"location"`
	Venue       string   `toml:"venue"`
	City        string   `toml:"city"`
	Category    string   `toml:"category"`
	ImageURL    string   `toml:"image_url"`
	Price       string   `toml:"price"`
	Organizer   string   `toml:"organizer"`
	Tags        []string `toml:"tags"`
	Link        string   `toml:"link"`
}

type seedFile struct {
	Events []seedEvent `toml:"events"`
}

// SeedEvents decodes the embedded seed catalog. Categories are normalized on
// the way in so the store never holds an unknown category.
func SeedEvents() ([]Event, error) {
	var file seedFile
	if err := toml.Unmarshal(seedTOML, &file); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}

	events := make([]Event, 0, len(file.Events))
	for _, s := range file.Events {
		events = append(events, Event{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Date:        s.Date,
			Location:    s.Location,
			Venue:       s.Venue,
			City:        s.City,
			Category:    NormalizeCategory(s.Category),
			ImageURL:    s.ImageURL,
			Price:       s.Price,
			Organizer:   s.Organizer,
			Tags:        s.Tags,
			Link:        s.Link,
		})
	}
	return events, nil
}
