package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "text-embedding-004"
	defaultBatchSize   = 100
	maxEmbedChars      = 40000
)

type GeminiModel struct {
	client    *genai.Client
	model     string
	batchSize int
}

// NewGeminiLoader returns a Loader that builds a Gemini API client on first use.
func NewGeminiLoader(apiKey, model string, batchSize int) Loader {
	return func(ctx context.Context) (Model, error) {
		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			return nil, errors.New("gemini api key is required")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}

		if model = strings.TrimSpace(model); model == "" {
			model = defaultGeminiModel
		}
		if batchSize <= 0 {
			batchSize = defaultBatchSize
		}
		return &GeminiModel{client: client, model: model, batchSize: batchSize}, nil
	}
}

func (g *GeminiModel) Name() string {
	return g.model
}

func (g *GeminiModel) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += g.batchSize {
		end := start + g.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		contents := make([]*genai.Content, 0, end-start)
		for _, t := range texts[start:end] {
			contents = append(contents, genai.NewContentFromText(truncateRunes(t, maxEmbedChars), genai.RoleUser))
		}

		res, err := g.client.Models.EmbedContent(ctx, g.model, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("embed content: %w", err)
		}
		if res == nil || len(res.Embeddings) != end-start {
			got := 0
			if res != nil {
				got = len(res.Embeddings)
			}
			return nil, fmt.Errorf("embed content: expected %d embeddings, got %d", end-start, got)
		}
		for _, e := range res.Embeddings {
			if e == nil || len(e.Values) == 0 {
				return nil, errors.New("embed content: empty embedding")
			}
			out = append(out, e.Values)
		}
	}
	return out, nil
}

func (g *GeminiModel) Close() error {
	return nil
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
