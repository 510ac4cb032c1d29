// Package discovery turns free-text prompts into catalog events by calling
// an external generative-AI capability and normalizing its loosely-typed
// response.
package discovery

import (
	"context"
	"errors"

	"kulturnorge/internal/catalog"
)

// PartialEvent is one record from the AI response. Every field is optional
// and untrusted.
type PartialEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	City        string `json:"city"`
	Category    string `json:"category"`
	Venue       string `json:"venue"`
	Link        string `json:"link"`
	Price       string `json:"price"`
}

// Result is the raw outcome of one discovery call.
type Result struct {
	Events  []PartialEvent
	Sources []catalog.GroundingSource
}

// Client is the port to the external AI capability.
type Client interface {
	DiscoverEvents(ctx context.Context, prompt string) (Result, error)
	MoodSuggestions(ctx context.Context, mood string) ([]string, error)
}

// ErrDisabled is returned by the Disabled client; Service absorbs it like any
// other discovery failure.
var ErrDisabled = errors.New("discovery: no API key configured")

// Disabled is the Client used when no API key is configured.
type Disabled struct{}

func (Disabled) DiscoverEvents(context.Context, string) (Result, error) {
	return Result{}, ErrDisabled
}

func (Disabled) MoodSuggestions(context.Context, string) ([]string, error) {
	return nil, ErrDisabled
}
