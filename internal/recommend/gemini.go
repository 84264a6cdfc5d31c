package recommend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Gemini generates answers with the Gemini API.
type Gemini struct {
	model string
}

var _ Generator = (*Gemini)(nil)

// NewGemini returns a generator for model.
func NewGemini(model string) *Gemini {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{model: model}
}

// Generate asks for a JSON array of {title} objects.
func (g *Gemini) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema(),
	})
	if err != nil {
		return "", classify(err)
	}
	return resp.Text(), nil
}

func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {
					Type:        genai.TypeString,
					Description: "The title of the recommended book.",
				},
			},
			Required: []string{"title"},
		},
	}
}

// classify marks key rejections as ErrInvalidCredential.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			if apiErr.Code != http.StatusBadRequest || strings.Contains(strings.ToLower(apiErr.Message), "api key") {
				return fmt.Errorf("gemini: %s: %w", apiErr.Message, ErrInvalidCredential)
			}
		}
	}
	return fmt.Errorf("gemini: %w", err)
}
