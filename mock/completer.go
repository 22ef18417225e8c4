package mock

import (
	"context"

	"vcfolio"
)

var _ vcfolio.Completer = (*Completer)(nil)

// Completer is a mock implementation of vcfolio.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, system, prompt string, temperature float32) (string, error)
}

func (c *Completer) Complete(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	return c.CompleteFn(ctx, system, prompt, temperature)
}
