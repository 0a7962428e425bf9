package recommend

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
)

// LowMatchReason is the reason given when no interest matched a candidate
const LowMatchReason = "low keyword match"

// kbHeatMaxBonus caps the heat bonus for knowledge-base items
const kbHeatMaxBonus = 8.0

// Scorer computes relevance scores for candidates.
//
// A Scorer owns its random source and is not safe for concurrent use;
// create one per request.
type Scorer struct {
	weights WeightConfig
	rng     *rand.Rand
}

// NewScorer creates a Scorer. A nil rng gets a freshly seeded generator.
func NewScorer(weights WeightConfig, rng *rand.Rand) *Scorer {
	if rng == nil {
		rng = NewRand()
	}
	return &Scorer{weights: weights, rng: rng}
}

// NewRand returns a generator seeded from the process-wide source
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic generator for the given seed
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Weights returns the scorer's weight configuration
func (s *Scorer) Weights() WeightConfig {
	return s.weights
}

// match records which fields an interest matched
type match struct {
	interest string
	name     bool
	desc     bool
	tag      bool
}

// Score returns the candidate's score and a human-readable match reason
func (s *Scorer) Score(c candidate.Candidate, interests []string) (float64, string) {
	matches := matchInterests(c, interests)
	score := s.baseScore(matches) + s.sourceBonus(c)

	if s.weights.RandomTieBreaker > 0 {
		score += s.rng.Float64() * s.weights.RandomTieBreaker
	}

	return score, explain(matches)
}

// baseScore sums the interest weights. Matches are additive across interests.
func (s *Scorer) baseScore(matches []match) float64 {
	score := 0.0
	for _, m := range matches {
		if m.name {
			score += s.weights.InterestNameWeight
		}
		if m.desc {
			score += s.weights.InterestDescWeight
		}
		if m.tag {
			score += s.weights.TagMatchWeight
		}
	}
	return score
}

// sourceBonus returns the popularity and source contribution
func (s *Scorer) sourceBonus(c candidate.Candidate) float64 {
	switch c.Source {
	case candidate.SourceRepositoryFeed:
		pop := s.weights.RepositoryPopularityWeightFactor * math.Log1p(math.Max(c.Popularity, 0))
		return math.Min(pop, s.weights.RepositoryPopularityMaxBonus) + s.weights.SourceRepositoryBonus
	default:
		bonus := s.weights.KBBaseScore + s.weights.SourceKBBonus
		if c.Popularity > 0 {
			bonus += math.Min(kbHeatMaxBonus, c.Popularity/10.0)
		}
		return bonus
	}
}

// matchInterests checks every interest against name, description and tags,
// case-insensitively. Only interests with at least one hit are returned.
func matchInterests(c candidate.Candidate, interests []string) []match {
	name := strings.ToLower(c.Name)
	desc := strings.ToLower(c.Description)
	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t != "" {
			tags = append(tags, strings.ToLower(t))
		}
	}

	var out []match
	for _, interest := range interests {
		key := strings.ToLower(strings.TrimSpace(interest))
		if key == "" {
			continue
		}

		m := match{
			interest: interest,
			name:     strings.Contains(name, key),
			desc:     strings.Contains(desc, key),
		}
		for _, t := range tags {
			if strings.Contains(t, key) {
				m.tag = true
				break
			}
		}

		if m.name || m.desc || m.tag {
			out = append(out, m)
		}
	}
	return out
}

// explain builds the match reason from interest matches
func explain(matches []match) string {
	var parts []string
	for _, m := range matches {
		if m.name {
			parts = append(parts, fmt.Sprintf("name match: %s", m.interest))
		}
		if m.desc {
			parts = append(parts, fmt.Sprintf("description match: %s", m.interest))
		}
		if m.tag {
			parts = append(parts, fmt.Sprintf("tag match: %s", m.interest))
		}
	}

	if len(parts) == 0 {
		return LowMatchReason
	}
	return strings.Join(parts, "; ")
}
