package github

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
)

// scrapeTrending reads the daily trending page, treating topic as a language slug
func (c *Client) scrapeTrending(ctx context.Context, topic string, n int) ([]candidate.Repository, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pageURL := fmt.Sprintf("%s/trending/%s?since=daily", c.config.WebBaseURL, url.PathEscape(topic))

	col := colly.NewCollector(
		colly.AllowedDomains(hostOf(c.config.WebBaseURL)),
		colly.UserAgent(c.config.UserAgent),
	)
	col.SetRequestTimeout(c.config.Timeout)

	repos := make([]candidate.Repository, 0, n)
	col.OnHTML("article.Box-row", func(e *colly.HTMLElement) {
		if len(repos) >= n {
			return
		}
		if r, ok := c.parseArticle(e); ok {
			repos = append(repos, r)
		}
	})

	var reqErr error
	col.OnError(func(r *colly.Response, err error) {
		reqErr = fmt.Errorf("trending page returned %d: %w", r.StatusCode, err)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := col.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("failed to fetch trending page: %w", err)
	}
	col.Wait()
	if reqErr != nil {
		return nil, reqErr
	}

	c.log.Debug("github trending", map[string]interface{}{"topic": topic, "results": len(repos)})
	return repos, nil
}

func (c *Client) parseArticle(e *colly.HTMLElement) (candidate.Repository, bool) {
	fullName := strings.Trim(strings.TrimSpace(e.ChildAttr("h2 a", "href")), "/")
	if fullName == "" {
		return candidate.Repository{}, false
	}

	owner, name, found := strings.Cut(fullName, "/")
	if !found {
		name = owner
	}

	return candidate.Repository{
		FullName:    fullName,
		Owner:       owner,
		Name:        name,
		Description: strings.TrimSpace(e.ChildText("p.col-9")),
		Stars:       parseStars(e.ChildText("a[href$='/stargazers']")),
		Language:    strings.TrimSpace(e.ChildText("span[itemprop='programmingLanguage']")),
		HTMLURL:     c.config.WebBaseURL + "/" + fullName,
	}, true
}

// parseStars converts star counts like "1,234" or "12.5k". Unparseable text is 0.
func parseStars(text string) int {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, ",", "")
	if text == "" {
		return 0
	}

	mult := 1.0
	if strings.HasSuffix(text, "k") {
		mult = 1000
		text = strings.TrimSuffix(text, "k")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v * mult)
}

func hostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return "github.com"
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}
