package goquery_test

import (
	"strings"
	"testing"

	"vcfolio"
	"vcfolio/goquery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ vcfolio.ContentNormalizer = (*goquery.Normalizer)(nil)

func TestNormalizer_Normalize_LineFormat(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<h1 class="title hero">Acme Robotics</h1>
<p>Acme builds warehouse robots.</p>
</body></html>`

	out := goquery.NewNormalizer().Normalize(html)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "h1 title hero: Acme Robotics", lines[0])
	assert.Equal(t, "p : Acme builds warehouse robots.", lines[1])
}

func TestNormalizer_Normalize_DiscardsNonContent(t *testing.T) {
	t.Parallel()

	html := `<html>
<head><style>.x { color: red }</style></head>
<body>
<nav><p>Home | Portfolio | Team</p></nav>
<header><h1>VC Firm</h1></header>
<script>var secret = "tracking";</script>
<footer><p>Copyright 2025</p></footer>
<iframe src="https://ads.example"></iframe>
<p>Acme builds warehouse robots.</p>
</body></html>`

	out := goquery.NewNormalizer().Normalize(html)

	assert.NotContains(t, out, "Home | Portfolio")
	assert.NotContains(t, out, "VC Firm")
	assert.NotContains(t, out, "tracking")
	assert.NotContains(t, out, "Copyright")
	assert.Contains(t, out, "Acme builds warehouse robots.")
}

func TestNormalizer_Normalize_DropsShortFragments(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>→</p><p>ok</p><p>Real description text.</p></body></html>`

	out := goquery.NewNormalizer().Normalize(html)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Real description text.")
}

func TestNormalizer_Normalize_MarksRelevantClasses(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<div class="company-description">Builds rockets.</div>
<div class="card">Unrelated card.</div>
</body></html>`

	out := goquery.NewNormalizer().Normalize(html)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "* div company-description: Builds rockets.", lines[0])
	assert.Equal(t, "div card: Unrelated card.", lines[1])
}

func TestNormalizer_Normalize_CollapsesWhitespace(t *testing.T) {
	t.Parallel()

	html := "<html><body><p>  Acme\n\tbuilds   robots  </p></body></html>"

	out := goquery.NewNormalizer().Normalize(html)

	assert.Equal(t, "p : Acme builds robots", out)
}

func TestNormalizer_Normalize_DocumentOrder(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<h2>First heading</h2>
<p>Middle paragraph.</p>
<h3>Last heading</h3>
</body></html>`

	out := goquery.NewNormalizer().Normalize(html)

	first := strings.Index(out, "First heading")
	middle := strings.Index(out, "Middle paragraph.")
	last := strings.Index(out, "Last heading")
	assert.True(t, first < middle && middle < last)
}

func TestNormalizer_Normalize_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, goquery.NewNormalizer().Normalize(""))
}
