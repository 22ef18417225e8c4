package scrape_test

import (
	"context"
	"testing"

	"vcfolio"
	"vcfolio/mock"
	"vcfolio/scrape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ vcfolio.CompanyExtractor = (*scrape.Extractor)(nil)

const extractReply = `{
	"name": "Acme Robotics",
	"description": "Builds warehouse robots.",
	"url": "https://acme.example",
	"location": "Sydney, Australia",
	"domain": "Robotics"
}`

func TestExtractor_Extract_ParsesAllFields(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, _ string, _ float32) (string, error) {
			return extractReply, nil
		},
	}

	e := scrape.NewExtractor(completer, nil)

	company, err := e.Extract(context.Background(),
		"h1 : Acme Robotics", "https://vc.example/portfolio/acme", "https://vc.example/portfolio")

	require.NoError(t, err)
	assert.Equal(t, "https://acme.example", company.URL)
	assert.Equal(t, "Acme Robotics", company.Name)
	assert.Equal(t, "Builds warehouse robots.", company.Description)
	assert.Equal(t, "https://vc.example/portfolio", company.Source)
	assert.Equal(t, "Sydney, Australia", company.Location)
	assert.Equal(t, "Robotics", company.Domain)
}

func TestExtractor_Extract_StripsCodeFences(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, _ string, _ float32) (string, error) {
			return "```json\n" + extractReply + "\n```", nil
		},
	}

	e := scrape.NewExtractor(completer, nil)

	company, err := e.Extract(context.Background(),
		"text", "https://vc.example/portfolio/acme", "https://vc.example/portfolio")

	require.NoError(t, err)
	assert.Equal(t, "Acme Robotics", company.Name)
}

func TestExtractor_Extract_MissingFieldsBecomeEmpty(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, _ string, _ float32) (string, error) {
			return `{"name": "Acme", "url": "https://acme.example"}`, nil
		},
	}

	e := scrape.NewExtractor(completer, nil)

	company, err := e.Extract(context.Background(),
		"text", "https://vc.example/portfolio/acme", "https://vc.example/portfolio")

	require.NoError(t, err)
	assert.Equal(t, "Acme", company.Name)
	assert.Empty(t, company.Description)
	assert.Empty(t, company.Location)
	assert.Empty(t, company.Domain)
}

func TestExtractor_Extract_InvalidURLFallsBackToPageURL(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, _ string, _ float32) (string, error) {
			return `{"name": "Acme", "url": "acme.example"}`, nil
		},
	}

	e := scrape.NewExtractor(completer, nil)

	company, err := e.Extract(context.Background(),
		"text", "https://vc.example/portfolio/acme", "https://vc.example/portfolio")

	require.NoError(t, err)
	assert.Equal(t, "https://vc.example/portfolio/acme", company.URL)
}

func TestExtractor_Extract_MalformedReplyYieldsEmptyResult(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, _ string, _ float32) (string, error) {
			return "I could not find any company information on this page.", nil
		},
	}

	e := scrape.NewExtractor(completer, nil)

	company, err := e.Extract(context.Background(),
		"text", "https://vc.example/portfolio/acme", "https://vc.example/portfolio")

	require.NoError(t, err)
	assert.Equal(t, "https://vc.example/portfolio/acme", company.URL)
	assert.Equal(t, "https://vc.example/portfolio", company.Source)
	assert.Empty(t, company.Name)
	assert.Empty(t, company.Description)
	assert.Empty(t, company.Location)
	assert.Empty(t, company.Domain)
}

func TestExtractor_Extract_ModelFailureYieldsEmptyResult(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, _ string, _ float32) (string, error) {
			return "", vcfolio.Errorf(vcfolio.EUNAVAILABLE, "model unavailable")
		},
	}

	e := scrape.NewExtractor(completer, nil)

	company, err := e.Extract(context.Background(),
		"text", "https://vc.example/portfolio/acme", "https://vc.example/portfolio")

	require.NoError(t, err)
	assert.Equal(t, "https://vc.example/portfolio/acme", company.URL)
	assert.Empty(t, company.Name)
}

func TestExtractor_Extract_NonStringFieldTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, _ string, _ float32) (string, error) {
			return `{"name": null, "url": "https://acme.example", "location": 42}`, nil
		},
	}

	e := scrape.NewExtractor(completer, nil)

	company, err := e.Extract(context.Background(),
		"text", "https://vc.example/portfolio/acme", "https://vc.example/portfolio")

	require.NoError(t, err)
	assert.Empty(t, company.Name)
	assert.Empty(t, company.Location)
	assert.Equal(t, "https://acme.example", company.URL)
}

func TestExtractor_Extract_TruncatesPromptText(t *testing.T) {
	t.Parallel()

	long := make([]byte, 10000)
	for i := range long {
		long[i] = 'a'
	}

	var gotPrompt string
	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, prompt string, _ float32) (string, error) {
			gotPrompt = prompt
			return extractReply, nil
		},
	}

	e := scrape.NewExtractor(completer, nil, scrape.WithMaxTextLength(4000))

	_, err := e.Extract(context.Background(),
		string(long), "https://vc.example/portfolio/acme", "https://vc.example/portfolio")

	require.NoError(t, err)
	// Prompt holds the scaffold plus at most 4000 bytes of page text.
	assert.Less(t, len(gotPrompt), 5000)
}

func TestExtractor_Extract_InvalidPageURLIsRejected(t *testing.T) {
	t.Parallel()

	completer := &mock.Completer{
		CompleteFn: func(_ context.Context, _, _ string, _ float32) (string, error) {
			return `{"name": "Acme"}`, nil
		},
	}

	e := scrape.NewExtractor(completer, nil)

	// No usable URL anywhere: model returned none and the page URL is
	// relative. The record cannot satisfy the URL invariant.
	_, err := e.Extract(context.Background(), "text", "/portfolio/acme", "https://vc.example/portfolio")

	require.Error(t, err)
	assert.Equal(t, vcfolio.EINVALID, vcfolio.ErrorCode(err))
}
