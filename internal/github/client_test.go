package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/pathfinder/internal/logger"
)

const trendingHTML = `<html><body>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/torvalds/linux"> torvalds / linux </a></h2>
  <p class="col-9 color-fg-muted my-1 pr-4"> Linux kernel source tree </p>
  <div><span itemprop="programmingLanguage">C</span>
  <a href="/torvalds/linux/stargazers"> 1,234 </a></div>
</article>
<article class="Box-row">
  <h2><a href="/golang/go">golang / go</a></h2>
  <p class="col-9">The Go programming language</p>
  <span itemprop="programmingLanguage">Go</span>
  <a href="/golang/go/stargazers">12.5k</a>
</article>
<article class="Box-row">
  <h2><a href="/rust-lang/rust">rust-lang / rust</a></h2>
  <a href="/rust-lang/rust/stargazers">n/a</a>
</article>
</body></html>`

const searchJSON = `{"total_count": 2, "items": [
  {"name": "pytorch", "full_name": "pytorch/pytorch", "html_url": "https://github.com/pytorch/pytorch",
   "description": "Tensors and dynamic neural networks", "stargazers_count": 80000, "language": "Python",
   "owner": {"login": "pytorch"}},
  {"name": "nodesc", "full_name": "acme/nodesc", "html_url": "https://github.com/acme/nodesc",
   "description": null, "stargazers_count": 5, "language": null, "owner": {"login": "acme"}}
]}`

func newTestClient(t *testing.T, srv *httptest.Server, token string) *Client {
	t.Helper()
	return NewClient(Config{
		Token:             token,
		APIBaseURL:        srv.URL,
		WebBaseURL:        srv.URL,
		RequestsPerMinute: 60000,
	}, logger.NewTest(t))
}

func TestTopReposForTopic_TrendingWithoutToken(t *testing.T) {
	var searchCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/repositories":
			searchCalls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		case "/trending/go":
			assert.Equal(t, "daily", r.URL.Query().Get("since"))
			fmt.Fprint(w, trendingHTML)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "")
	repos, err := c.TopReposForTopic(context.Background(), "  Go ", 8)
	require.NoError(t, err)
	require.Len(t, repos, 3)
	assert.Zero(t, searchCalls.Load())

	assert.Equal(t, "torvalds/linux", repos[0].FullName)
	assert.Equal(t, "torvalds", repos[0].Owner)
	assert.Equal(t, "linux", repos[0].Name)
	assert.Equal(t, "Linux kernel source tree", repos[0].Description)
	assert.Equal(t, 1234, repos[0].Stars)
	assert.Equal(t, "C", repos[0].Language)
	assert.Equal(t, srv.URL+"/torvalds/linux", repos[0].HTMLURL)

	assert.Equal(t, 12500, repos[1].Stars)
	assert.Equal(t, 0, repos[2].Stars)
}

func TestTopReposForTopic_TrendingRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, trendingHTML)
	}))
	defer srv.Close()

	repos, err := newTestClient(t, srv, "").TopReposForTopic(context.Background(), "go", 2)
	require.NoError(t, err)
	assert.Len(t, repos, 2)
}

func TestTopReposForTopic_SearchAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "machine-learning in:name,description,readme", r.URL.Query().Get("q"))
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, searchJSON)
	}))
	defer srv.Close()

	repos, err := newTestClient(t, srv, "secret").TopReposForTopic(context.Background(), "Machine-Learning", 5)
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, "pytorch/pytorch", repos[0].FullName)
	assert.Equal(t, 80000, repos[0].Stars)
	assert.Equal(t, "pytorch", repos[0].Owner)
	assert.Equal(t, "", repos[1].Description)
	assert.Equal(t, "", repos[1].Language)
}

func TestTopReposForTopic_SearchFailureFallsBackToTrending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/repositories":
			http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
		case "/trending/python":
			fmt.Fprint(w, trendingHTML)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	repos, err := newTestClient(t, srv, "secret").TopReposForTopic(context.Background(), "python", 8)
	require.NoError(t, err)
	assert.Len(t, repos, 3)
}

func TestTopReposForTopic_EmptySearchFallsBackToTrending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search/repositories" {
			fmt.Fprint(w, `{"items": []}`)
			return
		}
		fmt.Fprint(w, trendingHTML)
	}))
	defer srv.Close()

	repos, err := newTestClient(t, srv, "secret").TopReposForTopic(context.Background(), "go", 1)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "torvalds/linux", repos[0].FullName)
}

func TestTopReposForTopic_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var searchCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search/repositories" {
			searchCalls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, trendingHTML)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "secret")
	for i := 0; i < 5; i++ {
		_, err := c.TopReposForTopic(context.Background(), "go", 3)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), searchCalls.Load(), "breaker stops calling search after three consecutive failures")
}

func TestTopReposForTopic_TrendingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").TopReposForTopic(context.Background(), "cobol", 3)
	assert.Error(t, err)
}

func TestTopReposForTopic_BlankTopic(t *testing.T) {
	c := NewClient(Config{}, nil)
	repos, err := c.TopReposForTopic(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestParseStars(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1,234", 1234},
		{" 987 ", 987},
		{"12.5k", 12500},
		{"3K", 3000},
		{"", 0},
		{"n/a", 0},
		{"-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseStars(tt.in))
		})
	}
}
