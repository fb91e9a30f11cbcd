package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrGenerationFailed wraps every provider-level failure. No distinction is
// made between retryable and fatal provider errors, and no retry is
// performed.
var ErrGenerationFailed = errors.New("generation failed")

// Completer is the model-provider port: one blocking call per prompt, full
// completion text back. Implemented by GeminiClient in production and by
// fakes in tests.
type Completer interface {
	Complete(ctx context.Context, req PromptRequest) (string, error)
}

// GeminiClient calls the Gemini API through the genai SDK.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// Complete sends one prompt and waits for the full completion. Sampling
// parameters come from the rendered request, not from configuration.
// Identical prompts always re-invoke the provider; nothing is cached here.
func (c *GeminiClient) Complete(ctx context.Context, req PromptRequest) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.SystemRole)},
	}
	model.SetTemperature(req.Temperature)
	model.SetMaxOutputTokens(req.MaxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
