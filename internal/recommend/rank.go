package recommend

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
)

// DefaultMaxItems is the ranking cut-off when the caller does not set one
const DefaultMaxItems = 12

// ScoredCandidate is a candidate with its score and match reason
type ScoredCandidate struct {
	candidate.Candidate
	Score       float64 `json:"score"`
	MatchReason string  `json:"match_reason"`
}

// Rank scores every candidate, sorts descending and truncates to maxItems.
// An interest list with no non-blank entry yields no recommendations.
func (s *Scorer) Rank(cands []candidate.Candidate, interests []string, maxItems int) []ScoredCandidate {
	interests = nonBlank(interests)
	if len(interests) == 0 || len(cands) == 0 {
		return []ScoredCandidate{}
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	scored := make([]ScoredCandidate, 0, len(cands))
	for _, c := range cands {
		score, reason := s.Score(c, interests)
		scored = append(scored, ScoredCandidate{
			Candidate:   c,
			Score:       score,
			MatchReason: reason,
		})
	}

	slices.SortStableFunc(scored, func(a, b ScoredCandidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(scored) > maxItems {
		scored = scored[:maxItems]
	}
	for i := range scored {
		scored[i].Score = round2(scored[i].Score)
	}
	return scored
}

// Combine concatenates candidate lists from several sources
func Combine(sources ...[]candidate.Candidate) []candidate.Candidate {
	n := 0
	for _, s := range sources {
		n += len(s)
	}
	out := make([]candidate.Candidate, 0, n)
	for _, s := range sources {
		out = append(out, s...)
	}
	return out
}

// nonBlank returns the trimmed interests, dropping empty ones
func nonBlank(interests []string) []string {
	out := make([]string, 0, len(interests))
	for _, i := range interests {
		if i = strings.TrimSpace(i); i != "" {
			out = append(out, i)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
