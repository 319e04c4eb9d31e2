package videodata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchPage = `<!DOCTYPE html>
<html>
<head>
<title>Some Video Title</title>
<link itemprop="name" content="Some Channel">
</head>
<body></body>
</html>`

func TestParsePage(t *testing.T) {
	videoData, err := parsePage(strings.NewReader(watchPage), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "Some Video Title", videoData.Title)
	assert.Equal(t, "Some Channel", videoData.AuthorName)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", videoData.ThumbnailURL)
}

func TestParsePageMissingFields(t *testing.T) {
	videoData, err := parsePage(strings.NewReader("<html><body></body></html>"), "abc123")
	require.NoError(t, err)

	assert.Empty(t, videoData.Title)
	assert.Empty(t, videoData.AuthorName)
}

func TestGetWithOEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"T","author_name":"A","thumbnail_url":"U"}`))
	}))
	defer srv.Close()

	// Route every request at the test server.
	client := NewClient(&http.Client{Transport: rewriteTransport{srv.URL}})

	videoData, err := client.Get(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "T", videoData.Title)
	assert.Equal(t, "A", videoData.AuthorName)
}

func TestGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(&http.Client{Transport: rewriteTransport{srv.URL}})

	_, err := client.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

type rewriteTransport struct {
	target string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rewritten, err := http.NewRequestWithContext(req.Context(), req.Method, rt.target+"/?"+req.URL.RawQuery, nil)
	if err != nil {
		return nil, err
	}

	return http.DefaultTransport.RoundTrip(rewritten)
}
