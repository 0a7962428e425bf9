package recommend

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
	"github.com/vijay-prabhu/pathfinder/internal/logger"
)

// Defaults for the repository pick pipeline
const (
	DefaultFetchPerTopic = 30
	DefaultPickTotal     = 8
)

// InterestTopicMap expands interest tags into repository topics.
// Interests without an entry are used as topics directly.
var InterestTopicMap = map[string][]string{
	"Python开发": {"python", "django", "fastapi", "flask"},
	"机器学习":     {"machine-learning", "pytorch", "tensorflow", "scikit-learn"},
	"前端":       {"javascript", "react", "vue", "frontend", "typescript"},
	"后端":       {"backend", "spring-boot", "go", "nodejs", "microservices"},
	"算法":       {"algorithm", "data-structures", "leetcode", "competitive-programming"},
	"嵌入式":      {"embedded-systems", "stm32", "arduino", "rtos"},
	"区块链":      {"blockchain", "solidity", "web3", "ethereum"},
	"计算机视觉":    {"computer-vision", "opencv", "image-processing", "yolo"},
}

// RepoFetcher returns the top repositories for a topic
type RepoFetcher interface {
	TopReposForTopic(ctx context.Context, topic string, n int) ([]candidate.Repository, error)
}

// RepoCache persists fetched repositories between runs
type RepoCache interface {
	SaveRepositories(ctx context.Context, repos []candidate.Repository) error
	ListRepositories(ctx context.Context, limit int) ([]candidate.Repository, error)
}

// RepoPickerConfig configures a RepoPicker
type RepoPickerConfig struct {
	FetchPerTopic int
	PickTotal     int
}

// RepoPicker produces diversified repository picks for a set of interests
type RepoPicker struct {
	fetcher RepoFetcher
	cache   RepoCache
	log     logger.Logger
	config  RepoPickerConfig
}

// RepoPicks is the outcome of a pick run
type RepoPicks struct {
	Repositories []candidate.Repository `json:"repositories"`
	TopicsUsed   []string               `json:"topics_used"`
	Fetched      int                    `json:"fetched"`
	FromCache    bool                   `json:"from_cache"`
}

// NewRepoPicker creates a RepoPicker. fetcher and cache may be nil.
func NewRepoPicker(fetcher RepoFetcher, cache RepoCache, log logger.Logger, cfg RepoPickerConfig) *RepoPicker {
	if cfg.FetchPerTopic <= 0 {
		cfg.FetchPerTopic = DefaultFetchPerTopic
	}
	if cfg.PickTotal <= 0 {
		cfg.PickTotal = DefaultPickTotal
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &RepoPicker{fetcher: fetcher, cache: cache, log: log, config: cfg}
}

// TopicsFor expands interests into a deduplicated, ordered topic list
func TopicsFor(interests []string) []string {
	seen := make(map[string]bool)
	var topics []string
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		topics = append(topics, t)
	}

	for _, interest := range interests {
		if mapped, ok := InterestTopicMap[interest]; ok && len(mapped) > 0 {
			for _, t := range mapped {
				add(t)
			}
			continue
		}
		add(interest)
	}
	return topics
}

// Pick fetches candidates for the interests, falls back to the cache when
// nothing could be fetched, and returns a popularity-weighted sample
// shuffled for display.
func (p *RepoPicker) Pick(ctx context.Context, interests []string, rng *rand.Rand) (*RepoPicks, error) {
	result := &RepoPicks{Repositories: []candidate.Repository{}}
	if len(interests) == 0 {
		return result, nil
	}
	if rng == nil {
		rng = NewRand()
	}

	seen := make(map[string]bool)
	var pool []candidate.Repository

	if p.fetcher != nil {
		result.TopicsUsed = TopicsFor(interests)
		for _, topic := range result.TopicsUsed {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			fetched, err := p.fetcher.TopReposForTopic(ctx, topic, p.config.FetchPerTopic)
			if err != nil {
				p.log.WithError(err).Warn("repository fetch failed", map[string]interface{}{"topic": topic})
				continue
			}
			for _, r := range fetched {
				key := r.Key()
				if key == "" || seen[key] {
					continue
				}
				seen[key] = true
				r.FullName = key
				if r.HTMLURL == "" {
					r.HTMLURL = "https://github.com/" + key
				}
				r.MatchedTopic = topic
				pool = append(pool, r)
			}
		}

		if len(pool) > 0 && p.cache != nil {
			if err := p.cache.SaveRepositories(ctx, pool); err != nil {
				p.log.WithError(err).Warn("failed to cache repositories", map[string]interface{}{"count": len(pool)})
			}
		}
	}

	if len(pool) == 0 && p.cache != nil {
		cached, err := p.cache.ListRepositories(ctx, 0)
		if err != nil {
			return nil, err
		}
		for _, r := range cached {
			key := r.Key()
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			pool = append(pool, r)
		}
		result.FromCache = len(pool) > 0
	}

	result.Fetched = len(pool)
	if len(pool) == 0 {
		return result, nil
	}

	weights := make([]float64, len(pool))
	for i, r := range pool {
		weights[i] = PopularityWeight(float64(r.Stars))
	}

	picked := Sample(rng, pool, weights, min(p.config.PickTotal, len(pool)))
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

	result.Repositories = picked
	p.log.Debug("picked repositories", map[string]interface{}{
		"fetched":    result.Fetched,
		"picked":     len(picked),
		"from_cache": result.FromCache,
	})
	return result, nil
}

// Candidates normalizes repositories for the combined ranking
func Candidates(repos []candidate.Repository) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(repos))
	for _, r := range repos {
		out = append(out, candidate.FromRepository(r))
	}
	return out
}
