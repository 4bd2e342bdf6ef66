package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result results_links result--ad">
  <a class="result__a" href="https://ads.example.com">Sponsored</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.reuters.com%2Fapple-earnings&amp;rut=abc">Apple beats   earnings</a></h2>
  <a class="result__url" href="#"> www.reuters.com/apple-earnings </a>
  <a class="result__snippet">Apple reported
     record services revenue.</a>
  <span class="result__timestamp">2 days ago</span>
</div>
<div class="result results_links">
  <a class="result__a" href="https://example.com/direct">Direct link</a>
  <a class="result__snippet">Plain result</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://example.com/third">Third</a>
</div>
</body></html>`

func newSearchServer(t *testing.T, capture func(r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if capture != nil {
			capture(r)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(resultsPage))
	}))
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL))
}

func TestSearch_ParsesResults(t *testing.T) {
	var method, query, df string
	client := newSearchServer(t, func(r *http.Request) {
		method = r.Method
		query = r.PostForm.Get("q")
		df = r.PostForm.Get("df")
	})

	results, err := client.Search(context.Background(), "  apple earnings ", 2)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "apple earnings", query)
	assert.Empty(t, df)

	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Position)
	assert.Equal(t, "Apple beats earnings", results[0].Title)
	assert.Equal(t, "https://www.reuters.com/apple-earnings", results[0].URL)
	assert.Equal(t, "Apple reported record services revenue.", results[0].Snippet)
	assert.Equal(t, "www.reuters.com/apple-earnings", results[0].Source)
	assert.Equal(t, "2 days ago", results[0].Date)

	assert.Equal(t, 2, results[1].Position)
	assert.Equal(t, "https://example.com/direct", results[1].URL)
}

func TestSearchNews_UsesWeekFilter(t *testing.T) {
	var query, df string
	client := newSearchServer(t, func(r *http.Request) {
		query = r.PostForm.Get("q")
		df = r.PostForm.Get("df")
	})

	results, err := client.SearchNews(context.Background(), "tesla", 0)
	require.NoError(t, err)
	assert.Equal(t, "w", df)
	assert.True(t, strings.HasPrefix(query, "tesla"))
	assert.Len(t, results, 3)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := NewClient()
	_, err := client.Search(context.Background(), "   ", 5)
	assert.Error(t, err)
}

func TestSearch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Search(context.Background(), "x", 5)
	assert.Error(t, err)
}

func TestClampMaxResults(t *testing.T) {
	assert.Equal(t, 5, ClampMaxResults(0))
	assert.Equal(t, 5, ClampMaxResults(-3))
	assert.Equal(t, 1, ClampMaxResults(1))
	assert.Equal(t, 10, ClampMaxResults(50))
}

func TestDecodeRedirect(t *testing.T) {
	assert.Equal(t, "https://a.com/x?y=1", decodeRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fa.com%2Fx%3Fy%3D1"))
	assert.Equal(t, "https://b.com", decodeRedirect("https://b.com"))
}
