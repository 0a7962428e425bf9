package recommend

import (
	"errors"
	"fmt"
	"math"
)

// WeightConfig holds the tunable scoring parameters.
//
// RepositoryPopularityMaxBonus caps the popularity contribution regardless of
// RepositoryPopularityWeightFactor * ln(1+popularity).
type WeightConfig struct {
	InterestNameWeight               float64 `toml:"interest_name_weight" json:"interest_name_weight"`
	InterestDescWeight               float64 `toml:"interest_desc_weight" json:"interest_desc_weight"`
	TagMatchWeight                   float64 `toml:"tag_match_weight" json:"tag_match_weight"`
	KBBaseScore                      float64 `toml:"kb_base_score" json:"kb_base_score"`
	SourceRepositoryBonus            float64 `toml:"source_repository_bonus" json:"source_repository_bonus"`
	SourceKBBonus                    float64 `toml:"source_kb_bonus" json:"source_kb_bonus"`
	RepositoryPopularityWeightFactor float64 `toml:"repository_popularity_weight_factor" json:"repository_popularity_weight_factor"`
	RepositoryPopularityMaxBonus     float64 `toml:"repository_popularity_max_bonus" json:"repository_popularity_max_bonus"`
	RandomTieBreaker                 float64 `toml:"random_tie_breaker" json:"random_tie_breaker"`
}

// DefaultWeights returns the stock weight configuration
func DefaultWeights() WeightConfig {
	return WeightConfig{
		InterestNameWeight:               30.0,
		InterestDescWeight:               18.0,
		TagMatchWeight:                   12.0,
		KBBaseScore:                      6.0,
		SourceRepositoryBonus:            5.0,
		SourceKBBonus:                    2.0,
		RepositoryPopularityWeightFactor: 6.0,
		RepositoryPopularityMaxBonus:     40.0,
		RandomTieBreaker:                 1.5,
	}
}

// Validate checks that every weight is a finite, non-negative number
func (w WeightConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"interest_name_weight", w.InterestNameWeight},
		{"interest_desc_weight", w.InterestDescWeight},
		{"tag_match_weight", w.TagMatchWeight},
		{"kb_base_score", w.KBBaseScore},
		{"source_repository_bonus", w.SourceRepositoryBonus},
		{"source_kb_bonus", w.SourceKBBonus},
		{"repository_popularity_weight_factor", w.RepositoryPopularityWeightFactor},
		{"repository_popularity_max_bonus", w.RepositoryPopularityMaxBonus},
		{"random_tie_breaker", w.RandomTieBreaker},
	}

	var errs []error
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			errs = append(errs, fmt.Errorf("weights.%s must be a finite non-negative number, got %g", f.name, f.value))
		}
	}
	return errors.Join(errs...)
}

// WeightOverrides is a partial WeightConfig; nil fields keep the base value
type WeightOverrides struct {
	InterestNameWeight               *float64 `json:"interest_name_weight,omitempty"`
	InterestDescWeight               *float64 `json:"interest_desc_weight,omitempty"`
	TagMatchWeight                   *float64 `json:"tag_match_weight,omitempty"`
	KBBaseScore                      *float64 `json:"kb_base_score,omitempty"`
	SourceRepositoryBonus            *float64 `json:"source_repository_bonus,omitempty"`
	SourceKBBonus                    *float64 `json:"source_kb_bonus,omitempty"`
	RepositoryPopularityWeightFactor *float64 `json:"repository_popularity_weight_factor,omitempty"`
	RepositoryPopularityMaxBonus     *float64 `json:"repository_popularity_max_bonus,omitempty"`
	RandomTieBreaker                 *float64 `json:"random_tie_breaker,omitempty"`
}

// Apply returns base with the non-nil overrides applied
func (o WeightOverrides) Apply(base WeightConfig) WeightConfig {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}

	w := base
	set(&w.InterestNameWeight, o.InterestNameWeight)
	set(&w.InterestDescWeight, o.InterestDescWeight)
	set(&w.TagMatchWeight, o.TagMatchWeight)
	set(&w.KBBaseScore, o.KBBaseScore)
	set(&w.SourceRepositoryBonus, o.SourceRepositoryBonus)
	set(&w.SourceKBBonus, o.SourceKBBonus)
	set(&w.RepositoryPopularityWeightFactor, o.RepositoryPopularityWeightFactor)
	set(&w.RepositoryPopularityMaxBonus, o.RepositoryPopularityMaxBonus)
	set(&w.RandomTieBreaker, o.RandomTieBreaker)
	return w
}
