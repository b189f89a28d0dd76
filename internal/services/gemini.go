package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/MatiasRiera/travelmatch-backend/internal/models"
)

// ContentModel produces schema-constrained JSON from a natural-language
// prompt. Implementations wrap an external generative API; every failure is
// reported as models.ErrExternalService so callers can fall back uniformly.
type ContentModel interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error)
}

// GeminiModel is the Gemini-backed ContentModel.
type GeminiModel struct {
	client *genai.Client
	name   string
}

func NewGeminiModel(ctx context.Context, apiKey, modelName string) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiModel{client: client, name: modelName}, nil
}

func (g *GeminiModel) Close() {
	g.client.Close()
}

// GenerateJSON asks Gemini for a response constrained to the given schema
// and returns the raw JSON text of the first candidate.
func (g *GeminiModel) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	model := g.client.GenerativeModel(g.name)
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrExternalService, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", models.ErrExternalService)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("%w: non-text response part", models.ErrExternalService)
	}
	return []byte(text), nil
}
