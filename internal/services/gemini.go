package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Vishwa-247/light-and-lovely-space/internal/config"
)

var ErrAIUnavailable = errors.New("ai provider unavailable")

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateJSONWithRetry(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// NewGeminiService returns a client for the Gemini API. Without an API key
// every call fails with ErrAIUnavailable so callers can use their fallbacks.
func NewGeminiService(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (GeminiService, error) {
	g := &geminiService{
		modelName:  cfg.Model,
		embedModel: cfg.EmbedModel,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Second,
		logger:     log.Named("gemini"),
	}
	if g.maxRetries < 1 {
		g.maxRetries = 1
	}

	if cfg.APIKey == "" {
		g.logger.Warn("⚠️ GEMINI_API_KEY not set, AI features will use fallbacks")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if g.client == nil {
		return nil, ErrAIUnavailable
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(embeddingInput(text)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// GenerateJSON asks the model for a JSON document and returns its raw text.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	if g.client == nil {
		return "", ErrAIUnavailable
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		g.logger.Error("❌ Gemini API error", zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		reason := ""
		if len(resp.Candidates) > 0 {
			reason = string(resp.Candidates[0].FinishReason)
		}
		g.logger.Warn("❌ No text content in response", zap.String("finish_reason", reason))
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

func (g *geminiService) GenerateJSONWithRetry(ctx context.Context, prompt string, temperature float32) (string, error) {
	if g.client == nil {
		return "", ErrAIUnavailable
	}

	var lastErr error

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		result, err := g.GenerateJSON(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if attempt < g.maxRetries {
			g.logger.Warn("⚠️ Gemini attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)

			select {
			case <-ctx.Done():
				return "", fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-time.After(g.backoff * time.Duration(attempt)):
			}
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", g.maxRetries, lastErr)
}

// ~10000 tokens
const maxEmbeddingText = 40000

// embeddingInput caps text at maxEmbeddingText bytes without splitting a rune.
func embeddingInput(text string) string {
	if len(text) <= maxEmbeddingText {
		return text
	}
	cut := maxEmbeddingText
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
