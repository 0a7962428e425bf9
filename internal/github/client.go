package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
	"github.com/vijay-prabhu/pathfinder/internal/logger"
)

// Defaults for the GitHub client
const (
	DefaultAPIBaseURL        = "https://api.github.com"
	DefaultWebBaseURL        = "https://github.com"
	DefaultTimeout           = 15 * time.Second
	DefaultRequestsPerMinute = 30
	DefaultUserAgent         = "pathfinder/1.0"

	breakerName = "github-search"
)

// Config holds GitHub client settings
type Config struct {
	Token             string
	APIBaseURL        string
	WebBaseURL        string
	Timeout           time.Duration
	RequestsPerMinute int
	UserAgent         string
}

// Client fetches popular repositories for a topic. With a token it queries
// the search API and falls back to the trending page when that yields
// nothing; without one it only scrapes trending.
type Client struct {
	config  Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]candidate.Repository]
	log     logger.Logger
}

// NewClient creates a GitHub client
func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.WebBaseURL == "" {
		cfg.WebBaseURL = DefaultWebBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.WebBaseURL = strings.TrimRight(cfg.WebBaseURL, "/")
	if log == nil {
		log = logger.NewNop()
	}

	c := &Client{
		config:  cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
		log:     log,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]candidate.Repository](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return c
}

// HasToken reports whether the search API will be used
func (c *Client) HasToken() bool {
	return c.config.Token != ""
}

// TopReposForTopic returns up to n popular repositories for topic
func (c *Client) TopReposForTopic(ctx context.Context, topic string, n int) ([]candidate.Repository, error) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || n <= 0 {
		return []candidate.Repository{}, nil
	}

	if c.HasToken() {
		repos, err := c.searchAPI(ctx, topic, n)
		switch {
		case err != nil:
			c.log.WithError(err).Warn("github search failed, falling back to trending", map[string]interface{}{"topic": topic})
		case len(repos) > 0:
			return repos, nil
		}
	}

	return c.scrapeTrending(ctx, topic, n)
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	Language        string `json:"language"`
	Owner           struct {
		Login string `json:"login"`
	} `json:"owner"`
}

func (c *Client) searchAPI(ctx context.Context, topic string, n int) ([]candidate.Repository, error) {
	repos, err := c.breaker.Execute(func() ([]candidate.Repository, error) {
		return c.doSearch(ctx, topic, n)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("github search unavailable: %w", err)
	}
	return repos, err
}

func (c *Client) doSearch(ctx context.Context, topic string, n int) ([]candidate.Repository, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", topic+" in:name,description,readme")
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(n))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIBaseURL+"/search/repositories?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	items := out.Items
	if len(items) > n {
		items = items[:n]
	}

	repos := make([]candidate.Repository, 0, len(items))
	for _, it := range items {
		repos = append(repos, candidate.Repository{
			FullName:    it.FullName,
			Owner:       it.Owner.Login,
			Name:        it.Name,
			Description: it.Description,
			Stars:       it.StargazersCount,
			Language:    it.Language,
			HTMLURL:     it.HTMLURL,
		})
	}

	c.log.Debug("github search", map[string]interface{}{"topic": topic, "results": len(repos)})
	return repos, nil
}
