package design

import (
	"context"
	"fmt"
	"time"

	"tradein_backend/platform/config"

	"google.golang.org/genai"
)

// generateTimeout bounds the upstream call so the visitor never sits in an
// indefinite "sending" state.
const generateTimeout = 60 * time.Second

// GeminiGenerator implements Generator against the Gemini image model.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates the Gemini-backed generator. Returns
// ErrNotConfigured when no API key is present.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig) (*GeminiGenerator, error) {
	if !cfg.IsGeminiEnabled() {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("design: create client: %w", err)
	}

	return &GeminiGenerator{client: client, model: cfg.GetGeminiModel()}, nil
}

// Generate sends the photo(s) plus the edit instruction and extracts the
// returned inline image.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if len(req.Photo.Data) == 0 {
		return nil, fmt.Errorf("design: photo is required")
	}

	parts := make([]*genai.Part, 0, 3)
	parts = append(parts, genai.NewPartFromBytes(req.Photo.Data, req.Photo.MIMEType))

	prompt := compositePrompt
	if req.DesignPhoto != nil {
		parts = append(parts, genai.NewPartFromBytes(req.DesignPhoto.Data, req.DesignPhoto.MIMEType))
		prompt = replacementPrompt(req.DesignName, req.ColorName)
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: parts},
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("design: generate content: %w", err)
	}

	result, genErr := extractInlineImage(resp)
	if genErr != nil {
		return nil, genErr
	}
	return result, nil
}

// extractInlineImage finds the first inline-data part in the response.
// When none is present the candidate's finish reason is surfaced so the
// visitor-facing error can say why generation failed.
func extractInlineImage(resp *genai.GenerateContentResponse) (*Result, error) {
	finishReason := ""
	for _, candidate := range resp.Candidates {
		if candidate == nil {
			continue
		}
		if finishReason == "" && candidate.FinishReason != "" {
			finishReason = string(candidate.FinishReason)
		}
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &Result{
					ImageData: part.InlineData.Data,
					MIMEType:  part.InlineData.MIMEType,
				}, nil
			}
		}
	}
	return nil, &GenerationError{FinishReason: finishReason}
}

var _ Generator = (*GeminiGenerator)(nil)
