// Package gemini implements the vcfolio.Completer interface using the
// Google Gemini API.
package gemini

import (
	"context"

	"vcfolio"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements vcfolio.Completer at compile time.
var _ vcfolio.Completer = (*Completer)(nil)

// Completer is a single-turn text completion client backed by Gemini.
// No conversation state is retained between calls.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete sends the system instruction and user prompt to the model and
// returns the raw reply text.
func (c *Completer) Complete(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	if prompt == "" {
		return "", vcfolio.Errorf(vcfolio.EINVALID, "prompt required")
	}

	temp := temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", vcfolio.Errorf(vcfolio.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}
