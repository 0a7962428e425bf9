package planner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
	"github.com/vijay-prabhu/pathfinder/internal/career"
	"github.com/vijay-prabhu/pathfinder/internal/database"
	"github.com/vijay-prabhu/pathfinder/internal/knowledge"
	"github.com/vijay-prabhu/pathfinder/internal/logger"
	"github.com/vijay-prabhu/pathfinder/internal/recommend"
)

type stubFetcher struct {
	repos []candidate.Repository
	err   error
}

func (s stubFetcher) TopReposForTopic(context.Context, string, int) ([]candidate.Repository, error) {
	return s.repos, s.err
}

func testKB() *knowledge.KnowledgeBase {
	kb := knowledge.Empty()
	kb.Courses["计算机科学"] = []candidate.Course{
		{Code: "CS229", Name: "机器学习", Outline: "监督学习与无监督学习", Level: "研究生"},
		{Code: "CS101", Name: "数据结构", Outline: "线性表、树、图", Level: "本科"},
	}
	kb.Practice = []candidate.Practice{{Name: "Kaggle 竞赛", Desc: "机器学习实战", Type: "竞赛"}}
	return kb
}

func seed(v uint64) *uint64 { return &v }

func openStore(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newPlanner(t *testing.T, fetcher recommend.RepoFetcher, store Store) *Planner {
	t.Helper()
	log := logger.NewTest(t)
	picker := recommend.NewRepoPicker(fetcher, nil, log, recommend.RepoPickerConfig{PickTotal: 2})
	return New(testKB(), picker, nil, store, Options{Weights: recommend.DefaultWeights()}, log)
}

func TestRecommend_KnowledgeBaseOnly(t *testing.T) {
	p := newPlanner(t, nil, nil)

	res, err := p.Recommend(context.Background(), RecommendRequest{Interests: []string{" 机器学习 ", "机器学习"}, Seed: seed(1)})
	require.NoError(t, err)

	assert.Equal(t, []string{"机器学习"}, res.Interests)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "course:CS229", res.Items[0].ID)
	assert.Nil(t, res.Repos)
}

func TestRecommend_MixesRepositories(t *testing.T) {
	fetcher := stubFetcher{repos: []candidate.Repository{
		{FullName: "ml/awesome-machine-learning", Description: "机器学习 resources", Stars: 60000},
		{FullName: "tiny/repo", Stars: 1},
	}}
	p := newPlanner(t, fetcher, nil)

	res, err := p.Recommend(context.Background(), RecommendRequest{Interests: []string{"机器学习"}, IncludeRepos: true, Seed: seed(7)})
	require.NoError(t, err)
	require.NotNil(t, res.Repos)
	assert.Len(t, res.Repos.Repositories, 2)

	var kinds []candidate.Kind
	for _, it := range res.Items {
		kinds = append(kinds, it.Kind)
	}
	assert.Contains(t, kinds, candidate.KindRepository)
	assert.Contains(t, kinds, candidate.KindCourse)
}

func TestRecommend_FeedFailureDegrades(t *testing.T) {
	p := newPlanner(t, stubFetcher{err: errors.New("boom")}, nil)

	res, err := p.Recommend(context.Background(), RecommendRequest{Interests: []string{"机器学习"}, IncludeRepos: true})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Items)
	for _, it := range res.Items {
		assert.NotEqual(t, candidate.KindRepository, it.Kind)
	}
}

func TestRecommend_InvalidOverrides(t *testing.T) {
	p := newPlanner(t, nil, nil)
	neg := -1.0

	_, err := p.Recommend(context.Background(), RecommendRequest{
		Interests: []string{"机器学习"},
		Weights:   &recommend.WeightOverrides{TagMatchWeight: &neg},
	})
	assert.Error(t, err)
}

func TestRecommend_MaxItemsAndEmptyInterests(t *testing.T) {
	p := newPlanner(t, nil, nil)

	res, err := p.Recommend(context.Background(), RecommendRequest{Interests: []string{"机器学习"}, MaxItems: 1})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	res, err = p.Recommend(context.Background(), RecommendRequest{Interests: []string{"  "}})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestMatchCareers_DefaultLocation(t *testing.T) {
	table := career.Table{
		{CareerName: "上海岗位", Tags: []string{"后端"}, AllowedLocations: []string{"上海"}},
		{CareerName: "通用岗位", Tags: []string{"后端"}},
	}
	p := New(nil, nil, career.NewMatcher(table), nil, Options{DefaultLocation: "上海"}, nil)

	got, err := p.MatchCareers(context.Background(), CareerRequest{Interests: []string{"后端"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "上海岗位", got[0].CareerName)
	assert.Equal(t, 1.5, got[0].Score)
	assert.Len(t, p.Careers(), 2)
}

func TestPlans_Lifecycle(t *testing.T) {
	p := newPlanner(t, nil, openStore(t))
	ctx := context.Background()

	res, err := p.Recommend(ctx, RecommendRequest{Interests: []string{"机器学习"}, Seed: seed(3)})
	require.NoError(t, err)

	plan, err := p.SavePlan(ctx, "ML 路线", "北京", res.Interests, res.Items)
	require.NoError(t, err)
	require.NotEmpty(t, plan.ID)
	assert.Len(t, plan.Items, len(res.Items))

	list, err := p.Plans(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, len(res.Items), list[0].ItemCount)

	got, err := p.Plan(ctx, plan.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, res.Items[0].ID, got.Items[0].CandidateID)

	require.NoError(t, p.DeletePlan(ctx, plan.ID[:6]))
	_, err = p.Plan(ctx, plan.ID)
	assert.ErrorIs(t, err, database.ErrPlanNotFound)
}

func TestPlans_NoStore(t *testing.T) {
	p := newPlanner(t, nil, nil)
	ctx := context.Background()

	_, err := p.SavePlan(ctx, "x", "", nil, nil)
	assert.ErrorIs(t, err, ErrNoStore)
	_, err = p.Plans(ctx, 0)
	assert.ErrorIs(t, err, ErrNoStore)
	assert.ErrorIs(t, p.DeletePlan(ctx, "abc"), ErrNoStore)
}

func TestSplitInterests(t *testing.T) {
	assert.Equal(t, []string{"机器学习", "算法", "前端"}, SplitInterests("机器学习，算法, 前端,,算法"))
	assert.Empty(t, SplitInterests(""))
}

func TestCareerFeedback_AnnotatesAndHides(t *testing.T) {
	table := career.Table{
		{CareerName: "后端工程师", Tags: []string{"后端"}},
		{CareerName: "运维工程师", Tags: []string{"后端"}},
	}
	ctx := context.Background()
	p := New(nil, nil, career.NewMatcher(table), openStore(t), Options{}, logger.NewTest(t))

	_, err := p.RecordCareerFeedback(ctx, "后端工程师", "like")
	require.NoError(t, err)
	f, err := p.RecordCareerFeedback(ctx, " 运维工程师 ", "DISLIKE")
	require.NoError(t, err)
	assert.Equal(t, 1, f.Dislikes)

	got, err := p.MatchCareers(ctx, CareerRequest{Interests: []string{"后端"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "后端工程师", got[0].CareerName)
	assert.Equal(t, 1, got[0].Likes)
	assert.Equal(t, 1, got[1].Dislikes)

	got, err = p.MatchCareers(ctx, CareerRequest{Interests: []string{"后端"}, HideDisliked: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "后端工程师", got[0].CareerName)

	list, err := p.CareerFeedback(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCareerFeedback_HideDislikedFromOptions(t *testing.T) {
	table := career.Table{
		{CareerName: "A", Tags: []string{"x"}},
		{CareerName: "B", Tags: []string{"x"}},
	}
	ctx := context.Background()
	p := New(nil, nil, career.NewMatcher(table), openStore(t), Options{HideDisliked: true}, logger.NewTest(t))

	_, err := p.RecordCareerFeedback(ctx, "A", "dislike")
	require.NoError(t, err)

	got, err := p.MatchCareers(ctx, CareerRequest{Interests: []string{"x"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].CareerName)
}

func TestRecordCareerFeedback_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New(nil, nil, nil, nil, Options{}, nil).RecordCareerFeedback(ctx, "后端工程师", "like")
	assert.ErrorIs(t, err, ErrNoStore)

	p := New(nil, nil, nil, openStore(t), Options{}, logger.NewTest(t))
	_, err = p.RecordCareerFeedback(ctx, "宇航员", "like")
	assert.ErrorIs(t, err, ErrUnknownCareer)

	_, err = p.RecordCareerFeedback(ctx, "后端工程师", "meh")
	assert.Error(t, err)

	got, err := New(nil, nil, nil, nil, Options{}, nil).MatchCareers(ctx, CareerRequest{Interests: []string{"后端"}})
	require.NoError(t, err, "matching works without a store")
	assert.NotEmpty(t, got)
}
