package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	src := `<html><head><title>t</title><style>p{color:red}</style></head>
	<body><h1>Breaking   News</h1>
	<script>var x = "invisible";</script>
	<p>The claim is   false.</p>
	<noscript>enable js</noscript>
	</body></html>`

	got := ExtractText(src)
	assert.Equal(t, "t Breaking News The claim is false.", got)
}

func TestExtractTextPlainInput(t *testing.T) {
	assert.Equal(t, "just words here", ExtractText("  just \n words\there  "))
}

func TestFetchTextStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><p>hello world</p></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(zerolog.Nop()).WithRender(func(ctx context.Context, url string) (string, error) {
		t.Fatal("render fallback must not run when static fetch succeeds")
		return "", nil
	})

	got, err := f.FetchText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

func TestFetchTextFallsBackToRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	rendered := false
	f := NewFetcher(zerolog.Nop()).WithRender(func(ctx context.Context, url string) (string, error) {
		rendered = true
		return "<html><body>rendered content</body></html>", nil
	})

	got, err := f.FetchText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, rendered)
	assert.Equal(t, "rendered content", got)
}

func TestFetchTextRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte{0xde, 0xad})
	}))
	defer srv.Close()

	f := NewFetcher(zerolog.Nop()).WithRender(func(ctx context.Context, url string) (string, error) {
		return "", errors.New("no browser in tests")
	})

	_, err := f.FetchText(context.Background(), srv.URL)
	assert.Error(t, err)
}
