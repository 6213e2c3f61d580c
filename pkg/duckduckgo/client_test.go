package duckduckgo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const resultsPage = `<html><body>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://example.com/1">Cafe Du Monde <b>New Orleans</b></a>
  <a class="result__snippet" href="https://example.com/1">Visit us at 800 Decatur St in the French Quarter &amp; enjoy beignets.</a>
</div>
<div class="result">
  <a rel="nofollow" class="result__a" href="https://example.com/2">Second Result</a>
  <a class="result__snippet" href="https://example.com/2">Some
  unrelated   text.</a>
</div>
</body></html>`

func newTestClient(url string) Client {
	return NewClient(WithBaseURL(url), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
}

func TestSearch_ParsesResults(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = io.WriteString(w, resultsPage)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	results, err := c.Search(context.Background(), "Cafe Du Monde New Orleans address", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Cafe Du Monde New Orleans", results[0].Title)
	assert.Equal(t, "Visit us at 800 Decatur St in the French Quarter & enjoy beignets.", results[0].Body)
	assert.Equal(t, "Second Result", results[1].Title)
	assert.Equal(t, "Some unrelated text.", results[1].Body)
	assert.Equal(t, "Cafe Du Monde New Orleans address", gotQuery)
}

func TestSearch_MaxResultsCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, resultsPage)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	results, err := c.Search(context.Background(), "anything", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html><body>No results.</body></html>`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	results, err := c.Search(context.Background(), "gibberish", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	results, err := c.Search(context.Background(), "anything", 5)
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestAvailable(t *testing.T) {
	assert.True(t, NewClient().Available())
}
