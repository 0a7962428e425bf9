package career

// FallbackStrategy proposes backfill profiles when strict matching finds
// nothing. interests are already normalized (trimmed, lower-cased).
type FallbackStrategy interface {
	Name() string
	Candidates(table Table, interests []string) []Profile
}

// AdjacentTags backfills with profiles tagged in a related domain when one of
// the Trigger interests was requested
type AdjacentTags struct {
	Label   string
	Trigger []string
	Prefer  []string
}

func (a AdjacentTags) Name() string { return a.Label }

func (a AdjacentTags) Candidates(table Table, interests []string) []Profile {
	if !hasAny(interests, a.Trigger) {
		return nil
	}

	var out []Profile
	for _, p := range table {
		if hasAny(normalizeTags(p.Tags), a.Prefer) {
			out = append(out, p)
		}
	}
	return out
}

// NamedProfiles backfills with a fixed set of generic careers
type NamedProfiles struct {
	Label string
	Names []string
}

func (n NamedProfiles) Name() string { return n.Label }

func (n NamedProfiles) Candidates(table Table, _ []string) []Profile {
	want := make(map[string]bool, len(n.Names))
	for _, name := range n.Names {
		want[name] = true
	}

	var out []Profile
	for _, p := range table {
		if want[p.CareerName] {
			out = append(out, p)
		}
	}
	return out
}

// WholeTable backfills with every profile
type WholeTable struct{}

func (WholeTable) Name() string { return "whole-table" }

func (WholeTable) Candidates(table Table, _ []string) []Profile {
	return append([]Profile(nil), table...)
}

// DefaultFallbacks returns the standard backfill cascade: machine-learning
// adjacent careers, then the generic backend/frontend pair, then everything.
//
// Strategies are tried in order and the first non-empty result is used, so an
// AdjacentTags whose trigger matched but found nothing falls through.
func DefaultFallbacks() []FallbackStrategy {
	return []FallbackStrategy{
		AdjacentTags{
			Label:   "machine-learning-adjacent",
			Trigger: []string{"机器学习", "算法"},
			Prefer:  []string{"机器学习", "算法", "数据分析"},
		},
		NamedProfiles{
			Label: "generic-engineering",
			Names: []string{"后端工程师", "前端工程师"},
		},
		WholeTable{},
	}
}

// hasAny reports whether values and set share an element (both normalized)
func hasAny(values, set []string) bool {
	for _, v := range values {
		for _, s := range set {
			if v == normalizeTag(s) {
				return true
			}
		}
	}
	return false
}
