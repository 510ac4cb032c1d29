package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"kulturnorge/internal/catalog"
)

const discoverPrompt = `Finn aktuelle kulturarrangementer i Norge basert på denne forespørselen: %q.
Returner en liste over spesifikke arrangementer som skjer i nær fremtid.
Vennligst inkluder navn, by, kategori, kort beskrivelse og dato hvis mulig.`

const moodPrompt = `Gi meg 5 sjangre eller typer kulturarrangementer som passer til humøret: %q. Returner kun en JSON array av strenger.`

var eventSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"events": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"date":        {Type: genai.TypeString},
					"city":        {Type: genai.TypeString},
					"category":    {Type: genai.TypeString},
					"venue":       {Type: genai.TypeString},
				},
				Required: []string{"title", "city"},
			},
		},
	},
}

// Gemini implements Client against the Google generative AI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini connects a Gemini client for the given model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Close releases the underlying API connection.
func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) DiscoverEvents(ctx context.Context, prompt string) (Result, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = eventSchema
	model.Tools = []*genai.Tool{{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}}}

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(discoverPrompt, prompt)))
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return Result{}, err
	}

	var payload struct {
		Events []PartialEvent `json:"events"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return Result{}, fmt.Errorf("decode events payload: %w", err)
	}

	return Result{Events: payload.Events, Sources: citationSources(resp)}, nil
}

func (g *Gemini) MoodSuggestions(ctx context.Context, mood string) ([]string, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(moodPrompt, mood)))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("decode suggestions payload: %w", err)
	}
	return suggestions, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no response candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt), nil
		}
	}
	return "", errors.New("no text part in response")
}

// citationSources extracts grounding citations from the first candidate. The
// API does not return citation titles, so every source gets the generic
// placeholder.
func citationSources(resp *genai.GenerateContentResponse) []catalog.GroundingSource {
	if len(resp.Candidates) == 0 || resp.Candidates[0].CitationMetadata == nil {
		return nil
	}

	var sources []catalog.GroundingSource
	for _, cs := range resp.Candidates[0].CitationMetadata.CitationSources {
		uri := "#"
		if cs.URI != nil && *cs.URI != "" {
			uri = *cs.URI
		}
		sources = append(sources, catalog.GroundingSource{Title: "Kilde", URI: uri})
	}
	return sources
}
