// Package ai talks to the Gemini generateContent API and turns its output into
// coaching plans and chat answers.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 60 * time.Second
)

var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// Request is one single-turn generation call.
type Request struct {
	SystemInstruction string
	Prompt            string
	Temperature       float64
}

// TextGenerator returns the generated text for a request. An empty string with
// a nil error means the model answered with no text.
type TextGenerator interface {
	Generate(ctx context.Context, request Request) (string, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewGeminiClient(config Config) *GeminiClient {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &GeminiClient{
		apiKey:     strings.TrimSpace(config.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (client *GeminiClient) Generate(ctx context.Context, request Request) (string, error) {
	if client.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: request.Prompt}}}},
	}
	if instruction := strings.TrimSpace(request.SystemInstruction); instruction != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: instruction}}}
	}
	payload.GenerationConfig.Temperature = request.Temperature

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		client.baseURL, url.PathEscape(client.model), url.QueryEscape(client.apiKey))
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("parse gemini response (status %d): %w", response.StatusCode, err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("gemini api error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("gemini api status %d", response.StatusCode)
	}

	if len(decoded.Candidates) == 0 {
		return "", nil
	}
	var text strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}
