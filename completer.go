package vcfolio

import "context"

// Completer is a single-turn text completion service. It is the boundary
// to the generative model: one request, one reply, no streaming and no
// conversation state. Both the link classifier and the company extractor
// depend on this interface so tests can substitute canned replies.
type Completer interface {
	// Complete sends a system instruction and a user prompt to the model
	// and returns the raw reply text. Temperature controls decoding
	// randomness; extraction callers pass low values.
	Complete(ctx context.Context, system, prompt string, temperature float32) (string, error)
}
