package career

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(rs []Ranked) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.CareerName)
	}
	return out
}

func TestMatch_MachineLearningScenario(t *testing.T) {
	m := NewMatcher(DefaultTable())

	got := m.Match(Request{Interests: []string{"机器学习", "算法"}, Location: Nationwide})
	require.Len(t, got, 6)

	assert.Equal(t, "机器学习工程师", got[0].CareerName)
	assert.Equal(t, 2.0, got[0].Score)
	assert.Equal(t, "算法工程师", got[1].CareerName)
	assert.Equal(t, 2.0, got[1].Score)

	byName := make(map[string]Ranked)
	for _, r := range got {
		byName[r.CareerName] = r
		assert.False(t, r.Fallback)
	}
	assert.Equal(t, 1.0, byName["数据分析师"].Score)
	assert.NotContains(t, byName, "前端工程师")
	assert.NotContains(t, byName, "后端工程师")
}

func TestMatch_LocationHardExclusion(t *testing.T) {
	table := Table{
		{CareerName: "北京岗位", Tags: []string{"后端"}, AllowedLocations: []string{"北京"}},
		{CareerName: "不限地区", Tags: []string{"后端"}},
	}
	m := NewMatcher(table)

	got := m.Match(Request{Interests: []string{"后端"}, Location: "上海"})
	assert.Equal(t, []string{"不限地区"}, names(got))

	got = m.Match(Request{Interests: []string{"后端"}, Location: "北京"})
	require.Len(t, got, 2)
	assert.Equal(t, "北京岗位", got[0].CareerName)
	assert.Equal(t, 1.5, got[0].Score, "location bonus applies to restricted lists containing the city")
	assert.Equal(t, 1.0, got[1].Score)
}

func TestMatch_NationwideListIsUnrestricted(t *testing.T) {
	table := Table{
		{CareerName: "全国岗位", Tags: []string{"后端"}, AllowedLocations: []string{Nationwide}},
	}
	got := NewMatcher(table).Match(Request{Interests: []string{"后端"}, Location: "拉萨"})
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Score)
}

func TestMatch_StrategicBonusIsAdditive(t *testing.T) {
	table := Table{
		{CareerName: "普通岗位", Tags: []string{"前端"}},
		{CareerName: "战略岗位", Tags: []string{"硬件"}, IsStrategic: true, StrategicField: "芯片自主"},
		{CareerName: "匹配岗位", Tags: []string{"区块链"}},
	}
	m := NewMatcher(table)

	got := m.Match(Request{Interests: []string{"区块链"}, PrioritizeStrategic: true})
	require.Equal(t, []string{"战略岗位", "匹配岗位"}, names(got))
	assert.Equal(t, 2.0, got[0].Score)
	assert.Contains(t, got[0].MatchReason, "芯片自主")
	assert.False(t, got[0].Fallback)

	got = m.Match(Request{Interests: []string{"区块链"}, PrioritizeStrategic: false})
	assert.Equal(t, []string{"匹配岗位"}, names(got))
}

func TestMatch_EmptyInterestsNeverBackfill(t *testing.T) {
	got := NewMatcher(DefaultTable()).Match(Request{Location: ""})
	require.Len(t, got, 6)
	for _, r := range got {
		assert.Equal(t, 1.0, r.Score)
		assert.False(t, r.Fallback)
	}
}

func TestMatch_BackfillGenericPair(t *testing.T) {
	got := NewMatcher(DefaultTable()).Match(Request{Interests: []string{"区块链"}})

	assert.ElementsMatch(t, []string{"后端工程师", "前端工程师"}, names(got))
	for _, r := range got {
		assert.True(t, r.Fallback)
		assert.Equal(t, FallbackScore, r.Score)
		assert.Equal(t, FallbackReason, r.MatchReason)
		assert.Equal(t, "generic-engineering", r.Strategy)
	}
}

func TestMatch_BackfillAdjacentDomain(t *testing.T) {
	// No restricted profile lists 拉萨 and the unrestricted ones share no tag
	// with 机器学习, so the strict pass is empty.
	got := NewMatcher(DefaultTable()).Match(Request{Interests: []string{"机器学习"}, Location: "拉萨"})

	require.Len(t, got, 6)
	for _, r := range got {
		assert.True(t, r.Fallback)
		assert.NotEqual(t, "后端工程师", r.CareerName)
		assert.NotEqual(t, "前端工程师", r.CareerName)
		assert.Equal(t, "machine-learning-adjacent", r.Strategy)
	}
}

func TestMatch_BackfillWholeTable(t *testing.T) {
	table := Table{
		{CareerName: "A", Tags: []string{"x"}},
		{CareerName: "B", Tags: []string{"y"}},
	}
	got := NewMatcher(table).Match(Request{Interests: []string{"z"}})

	assert.Equal(t, []string{"A", "B"}, names(got))
	for _, r := range got {
		assert.True(t, r.Fallback)
		assert.Equal(t, "whole-table", r.Strategy)
	}
}

func TestMatch_StrictResultsHaveNoStrategy(t *testing.T) {
	got := NewMatcher(DefaultTable()).Match(Request{Interests: []string{"后端"}})
	require.NotEmpty(t, got)
	for _, r := range got {
		assert.False(t, r.Fallback)
		assert.Empty(t, r.Strategy)
	}
}

func TestMatch_ExcludeSkipsStrictMatches(t *testing.T) {
	table := Table{
		{CareerName: "A", Tags: []string{"后端"}},
		{CareerName: "B", Tags: []string{"后端"}},
	}
	got := NewMatcher(table).Match(Request{Interests: []string{"后端"}, Exclude: []string{" A "}})
	assert.Equal(t, []string{"B"}, names(got))
}

func TestMatch_ExcludeFallsThroughBackfill(t *testing.T) {
	// Both generic careers are excluded, so the whole-table strategy runs.
	got := NewMatcher(DefaultTable()).Match(Request{
		Interests: []string{"区块链"},
		Exclude:   []string{"后端工程师", "前端工程师"},
	})

	require.Len(t, got, 6)
	for _, r := range got {
		assert.Equal(t, "whole-table", r.Strategy)
		assert.NotContains(t, []string{"后端工程师", "前端工程师"}, r.CareerName)
	}
}

func TestWithStrategicBonus(t *testing.T) {
	table := Table{{CareerName: "战略岗位", Tags: []string{"硬件"}, IsStrategic: true, StrategicField: "芯片自主"}}

	got := NewMatcher(table, WithStrategicBonus(5)).Match(Request{Interests: []string{"硬件"}, PrioritizeStrategic: true})
	require.Len(t, got, 1)
	assert.Equal(t, 6.0, got[0].Score)
}

func TestMatch_EmptyTable(t *testing.T) {
	got := NewMatcher(nil).Match(Request{Interests: []string{"机器学习"}})
	assert.Empty(t, got)
}

func TestMatch_TruncatesToSix(t *testing.T) {
	var table Table
	for i := 0; i < 20; i++ {
		table = append(table, Profile{CareerName: string(rune('a' + i)), Tags: []string{"go"}})
	}

	got := NewMatcher(table).Match(Request{Interests: []string{"go"}})
	assert.Len(t, got, DefaultMaxResults)
}

func TestMatch_CaseInsensitiveOverlap(t *testing.T) {
	got := NewMatcher(DefaultTable()).Match(Request{Interests: []string{" python开发 "}})

	require.NotEmpty(t, got)
	assert.False(t, got[0].Fallback)
	assert.Equal(t, 1.0, got[0].Score)
}

func TestFinalize_DedupKeepsHigherScore(t *testing.T) {
	m := NewMatcher(nil)
	got := m.finalize([]Ranked{
		{Profile: Profile{CareerName: "A"}, Score: 0.5, Fallback: true},
		{Profile: Profile{CareerName: "B"}, Score: 1},
		{Profile: Profile{CareerName: "A"}, Score: 3},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].CareerName)
	assert.Equal(t, 3.0, got[0].Score)
	assert.False(t, got[0].Fallback)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careers.toml")
	data := `
[[careers]]
career = "SRE"
tags = ["运维", "后端"]
locations = ["北京"]
skills = ["Linux", "Kubernetes"]
salary = "15k-30k/月"
companies = "云厂商"

[[careers]]
career = "数据工程师"
tags = ["数据分析"]
strategic = true
strategic_field = "数字经济"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "SRE", table[0].CareerName)
	assert.Equal(t, []string{"北京"}, table[0].AllowedLocations)
	assert.True(t, table[1].IsStrategic)
	assert.Equal(t, "数字经济", table[1].StrategicField)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[careers]]\ntags = [\"x\"]\n"), 0644))
	_, err = LoadTable(bad)
	assert.Error(t, err)
}
