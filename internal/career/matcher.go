package career

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Scoring constants
const (
	DefaultStrategicBonus = 2.0
	DefaultLocationBonus  = 0.5
	DefaultMaxResults     = 6
	FallbackScore         = 0.5
)

// FallbackReason marks a backfilled suggestion that is not a strict match
const FallbackReason = "未找到与你兴趣高度匹配的职业，推荐一些相关或通用的软件/数据岗位作为兜底方向"

// Ranked is a career profile with its match score
type Ranked struct {
	Profile
	Score       float64 `json:"score"`
	MatchReason string  `json:"match_reason"`
	Fallback    bool    `json:"fallback"`
	// Strategy names the backfill strategy that produced a fallback entry
	Strategy string `json:"strategy,omitempty"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// Request describes a career matching query
type Request struct {
	Interests           []string `json:"interests"`
	Location            string   `json:"location"`
	PrioritizeStrategic bool     `json:"prioritize_strategic"`
	// Exclude lists career names that must not be returned, strict or backfilled
	Exclude []string `json:"exclude,omitempty"`
}

// Matcher ranks a career table against interests and location.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	table          Table
	strategicBonus float64
	locationBonus  float64
	maxResults     int
	fallbacks      []FallbackStrategy
}

// Option configures a Matcher
type Option func(*Matcher)

// WithStrategicBonus overrides the strategic-field bonus
func WithStrategicBonus(b float64) Option {
	return func(m *Matcher) { m.strategicBonus = b }
}

// WithFallbacks replaces the backfill cascade
func WithFallbacks(f ...FallbackStrategy) Option {
	return func(m *Matcher) { m.fallbacks = f }
}

// NewMatcher creates a Matcher over table
func NewMatcher(table Table, opts ...Option) *Matcher {
	m := &Matcher{
		table:          table,
		strategicBonus: DefaultStrategicBonus,
		locationBonus:  DefaultLocationBonus,
		maxResults:     DefaultMaxResults,
		fallbacks:      DefaultFallbacks(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Table returns the profiles the matcher ranks
func (m *Matcher) Table() Table {
	return m.table
}

// Match returns at most six careers ranked by score. It never fails and
// returns an empty result only when the table itself is empty.
func (m *Matcher) Match(req Request) []Ranked {
	interests := cleanInterests(req.Interests)
	keys := normalizeTags(interests)
	location := NormalizeLocation(req.Location)

	excluded := make(map[string]bool, len(req.Exclude))
	for _, name := range req.Exclude {
		excluded[strings.TrimSpace(name)] = true
	}

	var results []Ranked
	for _, p := range m.table {
		if excluded[p.CareerName] {
			continue
		}
		if r, ok := m.scoreStrict(p, interests, keys, location, req.PrioritizeStrategic); ok {
			results = append(results, r)
		}
	}

	if len(results) == 0 && len(interests) > 0 {
		results = m.backfill(keys, excluded)
	}

	return m.finalize(results)
}

// scoreStrict applies the location filter and scoring rules to one profile
func (m *Matcher) scoreStrict(p Profile, interests, keys []string, location string, prioritizeStrategic bool) (Ranked, bool) {
	restricted := !p.Unrestricted()
	anywhere := location == Nationwide

	// Hard exclusion, not a penalty.
	if restricted && !anywhere && !p.AllowsLocation(location) {
		return Ranked{}, false
	}

	overlap := overlapCount(keys, normalizeTags(p.Tags))

	// Without interests every profile gets a flat base so generic careers
	// still surface.
	base := float64(overlap)
	if len(interests) == 0 {
		base = 1
	}

	locationBonus := 0.0
	if restricted && !anywhere && p.AllowsLocation(location) {
		locationBonus = m.locationBonus
	}

	strategicBonus := 0.0
	if prioritizeStrategic && p.IsStrategic {
		strategicBonus = m.strategicBonus
	}

	score := base + locationBonus + strategicBonus
	if score <= 0 {
		return Ranked{}, false
	}

	var reasons []string
	if overlap > 0 {
		reasons = append(reasons, fmt.Sprintf("与你的兴趣标签 [%s] 有 %d 个直接匹配", strings.Join(interests, ", "), overlap))
	} else {
		reasons = append(reasons, "与常见开发/数据岗位相关，适合作为通用方向")
	}

	switch {
	case anywhere:
		reasons = append(reasons, "你选择了『全国』，该职业在多地都有需求")
	case locationBonus > 0:
		reasons = append(reasons, fmt.Sprintf("该职业在你选择的地区（%s）招聘较多", location))
	case !restricted:
		reasons = append(reasons, "该职业对地区要求不高，全国大部分城市都有机会")
	}

	if p.IsStrategic {
		field := p.StrategicField
		if field == "" {
			field = "国家重点领域"
		}
		reasons = append(reasons, "国家战略重点领域："+field)
	}

	return Ranked{
		Profile:     p,
		Score:       score,
		MatchReason: strings.Join(reasons, "；"),
	}, true
}

// backfill walks the fallback cascade and returns the first non-empty set
func (m *Matcher) backfill(keys []string, excluded map[string]bool) []Ranked {
	for _, f := range m.fallbacks {
		var out []Ranked
		for _, p := range f.Candidates(m.table, keys) {
			if excluded[p.CareerName] {
				continue
			}
			out = append(out, Ranked{
				Profile:     p,
				Score:       FallbackScore,
				MatchReason: FallbackReason,
				Fallback:    true,
				Strategy:    f.Name(),
			})
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// finalize dedups by career name keeping the higher score, sorts and truncates
func (m *Matcher) finalize(results []Ranked) []Ranked {
	if len(results) == 0 {
		return []Ranked{}
	}

	index := make(map[string]int, len(results))
	deduped := make([]Ranked, 0, len(results))
	for _, r := range results {
		i, ok := index[r.CareerName]
		if !ok {
			index[r.CareerName] = len(deduped)
			deduped = append(deduped, r)
			continue
		}
		if r.Score > deduped[i].Score {
			deduped[i] = r
		}
	}

	slices.SortStableFunc(deduped, func(a, b Ranked) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(deduped) > m.maxResults {
		deduped = deduped[:m.maxResults]
	}
	return deduped
}

// NormalizeLocation trims loc and maps empty to Nationwide
func NormalizeLocation(loc string) string {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return Nationwide
	}
	return loc
}

func cleanInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	for _, i := range interests {
		if i = strings.TrimSpace(i); i != "" {
			out = append(out, i)
		}
	}
	return out
}

// normalizeTag folds case so interest and profile tags compare consistently
func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = normalizeTag(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// overlapCount returns the size of the set intersection of a and b
func overlapCount(a, b []string) int {
	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[t] = true
	}

	seen := make(map[string]bool, len(a))
	n := 0
	for _, t := range a {
		if set[t] && !seen[t] {
			seen[t] = true
			n++
		}
	}
	return n
}
