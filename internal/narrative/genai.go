package narrative

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// summaryTemperature keeps the narrative factual; the alert wording already
// carries the urgency.
const summaryTemperature = 0.4

// GenAIGenerator generates summaries with Google's Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini-backed Generator.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{client: client, model: model}, nil
}

// Summarize sends the fixed prompt template to the chat-completion API and
// returns the response text.
func (g *GenAIGenerator) Summarize(ctx context.Context, alerts, recommendations []string) (string, error) {
	prompt := BuildPrompt(alerts, recommendations)

	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](summaryTemperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI summary failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no summary text returned")
	}
	return text, nil
}

// Name returns the generator name for logging.
func (g *GenAIGenerator) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}
