package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
)

// noJitter returns the default weights with the tie breaker disabled
func noJitter() WeightConfig {
	w := DefaultWeights()
	w.RandomTieBreaker = 0
	return w
}

func TestScore_InterestWeights(t *testing.T) {
	s := NewScorer(noJitter(), NewSeededRand(1))

	tests := []struct {
		name       string
		cand       candidate.Candidate
		interests  []string
		wantScore  float64
		wantReason string
	}{
		{
			name: "name, description and tag all match",
			cand: candidate.Candidate{
				Name:        "Python Basics",
				Description: "learn python quickly",
				Tags:        []string{"Python开发"},
				Source:      candidate.SourceKnowledgeBase,
			},
			interests:  []string{"python"},
			wantScore:  30 + 18 + 12 + 6 + 2,
			wantReason: "name match: python; description match: python; tag match: python",
		},
		{
			name: "matches are additive across interests",
			cand: candidate.Candidate{
				Name:   "机器学习与算法",
				Source: candidate.SourceKnowledgeBase,
			},
			interests:  []string{"机器学习", "算法"},
			wantScore:  30 + 30 + 6 + 2,
			wantReason: "name match: 机器学习; name match: 算法",
		},
		{
			name: "no match keeps the source bonus",
			cand: candidate.Candidate{
				Name:   "Painting",
				Source: candidate.SourceKnowledgeBase,
			},
			interests:  []string{"go"},
			wantScore:  6 + 2,
			wantReason: LowMatchReason,
		},
		{
			name: "tag substring match is case-insensitive",
			cand: candidate.Candidate{
				Name:   "x",
				Tags:   []string{"Machine-Learning"},
				Source: candidate.SourceKnowledgeBase,
			},
			interests:  []string{"machine"},
			wantScore:  12 + 6 + 2,
			wantReason: "tag match: machine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reason := s.Score(tt.cand, tt.interests)
			assert.InDelta(t, tt.wantScore, score, 1e-9)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestScore_KnowledgeBaseHeat(t *testing.T) {
	s := NewScorer(noJitter(), NewSeededRand(1))
	base := candidate.Candidate{Name: "x", Source: candidate.SourceKnowledgeBase}

	warm := base
	warm.Popularity = 30
	score, _ := s.Score(warm, []string{"zzz"})
	assert.InDelta(t, 8+3.0, score, 1e-9)

	hot := base
	hot.Popularity = 500
	score, _ = s.Score(hot, []string{"zzz"})
	assert.InDelta(t, 8+8.0, score, 1e-9, "heat bonus is capped at 8")
}

func TestScore_RepositoryPopularity(t *testing.T) {
	s := NewScorer(noJitter(), NewSeededRand(1))

	repo := candidate.Candidate{Name: "a/b", Source: candidate.SourceRepositoryFeed, Popularity: 99}
	score, _ := s.Score(repo, []string{"zzz"})
	assert.InDelta(t, 6*math.Log1p(99)+5, score, 1e-9)

	repo.Popularity = 1e9
	score, _ = s.Score(repo, []string{"zzz"})
	assert.InDelta(t, 40+5.0, score, 1e-9, "popularity bonus is capped")

	repo.Popularity = 0
	score, _ = s.Score(repo, []string{"zzz"})
	assert.InDelta(t, 5.0, score, 1e-9)
}

func TestScore_JitterBounded(t *testing.T) {
	w := DefaultWeights()
	s := NewScorer(w, NewSeededRand(7))
	c := candidate.Candidate{Name: "Go", Source: candidate.SourceKnowledgeBase}

	for i := 0; i < 500; i++ {
		score, _ := s.Score(c, []string{"go"})
		pre := 30.0 + 6 + 2
		assert.GreaterOrEqual(t, score, pre)
		assert.Less(t, score, pre+w.RandomTieBreaker)
	}
}

func TestScore_SeededDeterminism(t *testing.T) {
	c := candidate.Candidate{Name: "Go", Source: candidate.SourceKnowledgeBase}

	a, _ := NewScorer(DefaultWeights(), NewSeededRand(42)).Score(c, []string{"go"})
	b, _ := NewScorer(DefaultWeights(), NewSeededRand(42)).Score(c, []string{"go"})
	assert.Equal(t, a, b)
}

func TestRank_OrderStableAcrossJitter(t *testing.T) {
	cands := []candidate.Candidate{
		{ID: "low", Name: "Cooking", Source: candidate.SourceKnowledgeBase},
		{ID: "high", Name: "Go Programming", Description: "go", Source: candidate.SourceKnowledgeBase},
		{ID: "mid", Name: "Systems", Tags: []string{"go"}, Source: candidate.SourceKnowledgeBase},
	}

	for seed := uint64(0); seed < 50; seed++ {
		ranked := NewScorer(DefaultWeights(), NewSeededRand(seed)).Rank(cands, []string{"go"}, 0)
		require.Len(t, ranked, 3)
		assert.Equal(t, "high", ranked[0].ID)
		assert.Equal(t, "mid", ranked[1].ID)
		assert.Equal(t, "low", ranked[2].ID)
	}
}

func TestRank_TruncatesAndRounds(t *testing.T) {
	var cands []candidate.Candidate
	for i := 0; i < 20; i++ {
		cands = append(cands, candidate.Candidate{Name: "item", Source: candidate.SourceKnowledgeBase})
	}

	s := NewScorer(DefaultWeights(), NewSeededRand(3))
	ranked := s.Rank(cands, []string{"item"}, 0)
	assert.Len(t, ranked, DefaultMaxItems)

	ranked = s.Rank(cands, []string{"item"}, 5)
	require.Len(t, ranked, 5)
	for i, r := range ranked {
		assert.Equal(t, round2(r.Score), r.Score)
		if i > 0 {
			assert.LessOrEqual(t, r.Score, ranked[i-1].Score)
		}
	}
}

func TestRank_EmptyInputs(t *testing.T) {
	s := NewScorer(DefaultWeights(), nil)
	cands := []candidate.Candidate{{Name: "x"}}

	assert.Empty(t, s.Rank(cands, nil, 10))
	assert.Empty(t, s.Rank(nil, []string{"x"}, 10))
	assert.Empty(t, s.Rank(cands, []string{"  ", ""}, 10), "blank interests count as none")

	ranked := s.Rank(cands, []string{" x "}, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, "name match: x", ranked[0].MatchReason)
}

func TestWeightOverrides_Apply(t *testing.T) {
	name := 50.0
	zero := 0.0
	w := WeightOverrides{InterestNameWeight: &name, RandomTieBreaker: &zero}.Apply(DefaultWeights())

	assert.Equal(t, 50.0, w.InterestNameWeight)
	assert.Equal(t, 0.0, w.RandomTieBreaker)
	assert.Equal(t, 18.0, w.InterestDescWeight)
}

func TestWeightConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	w := DefaultWeights()
	w.TagMatchWeight = -1
	w.KBBaseScore = -2
	err := w.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag_match_weight")
	assert.Contains(t, err.Error(), "kb_base_score")

	tests := []struct {
		name string
		set  func(*WeightConfig)
		want string
	}{
		{"nan name weight", func(w *WeightConfig) { w.InterestNameWeight = math.NaN() }, "interest_name_weight"},
		{"positive infinity cap", func(w *WeightConfig) { w.RepositoryPopularityMaxBonus = math.Inf(1) }, "repository_popularity_max_bonus"},
		{"negative infinity tie breaker", func(w *WeightConfig) { w.RandomTieBreaker = math.Inf(-1) }, "random_tie_breaker"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.set(&w)
			err := w.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
