package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GeminiProvider implements Provider against the Generative Language API's
// embedContent endpoint.
type GeminiProvider struct {
	ApiKey    string
	Model     string
	dimension int
	client    *http.Client
}

func NewGeminiProvider(apiKey string, dimension int) *GeminiProvider {
	if dimension <= 0 {
		dimension = 768
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		Model:     "text-embedding-004",
		dimension: dimension,
		client:    &http.Client{},
	}
}

type geminiEmbeddingRequest struct {
	Model   string `json:"model"`
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
	TaskType string `json:"taskType,omitempty"`
}

type geminiEmbeddingResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (p *GeminiProvider) Dimension() int {
	return p.dimension
}

func (p *GeminiProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return ZeroVector(p.dimension), nil
	}

	var geminiReq geminiEmbeddingRequest
	geminiReq.Model = p.Model
	geminiReq.Content.Parts = []struct {
		Text string `json:"text"`
	}{{Text: text}}
	geminiReq.TaskType = "RETRIEVAL_DOCUMENT"

	jsonBody, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:embedContent",
		p.Model,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var geminiRes geminiEmbeddingResponse
	if err := json.Unmarshal(resByte, &geminiRes); err != nil {
		return nil, err
	}

	if len(geminiRes.Embedding.Values) != p.dimension {
		return nil, fmt.Errorf("gemini returned %d dimensions, expected %d", len(geminiRes.Embedding.Values), p.dimension)
	}

	return normalizeVector(geminiRes.Embedding.Values), nil
}

func (p *GeminiProvider) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := p.Generate(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}
