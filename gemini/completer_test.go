package gemini_test

import (
	"context"
	"testing"

	"vcfolio"
	"vcfolio/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ vcfolio.Completer = (*gemini.Completer)(nil)

func TestCompleter_Complete_ReturnsErrorWhenPromptEmpty(t *testing.T) {
	t.Parallel()

	c := gemini.NewCompleter(nil, "") // nil client ok for this test

	_, err := c.Complete(context.Background(), "system", "", 0.2)

	require.Error(t, err)
	assert.Equal(t, vcfolio.EINVALID, vcfolio.ErrorCode(err))
	assert.Contains(t, vcfolio.ErrorMessage(err), "prompt required")
}
