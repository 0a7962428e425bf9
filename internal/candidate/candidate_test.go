package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCourse(t *testing.T) {
	c := FromCourse("计算机科学", Course{
		Code:    "CS101",
		Name:    "数据结构",
		Outline: "线性表、树、图",
		Level:   "本科",
		Link:    "https://example.edu/cs101",
		Heat:    42,
	})

	assert.Equal(t, "course:CS101", c.ID)
	assert.Equal(t, KindCourse, c.Kind)
	assert.Equal(t, SourceKnowledgeBase, c.Source)
	assert.Equal(t, []string{"本科", "计算机科学"}, c.Tags)
	assert.Equal(t, 42.0, c.Popularity)
}

func TestFromJob(t *testing.T) {
	c := FromJob(JobPosting{
		Company:  "Acme",
		Position: "Backend Engineer",
		Skills:   []string{"Go", "", "SQL"},
	})

	assert.Equal(t, "jd:Acme_Backend Engineer", c.ID)
	assert.Equal(t, "Acme - Backend Engineer", c.Name)
	assert.Equal(t, []string{"Go", "SQL"}, c.Tags)
}

func TestFromAdvisor_SplitsResearch(t *testing.T) {
	c := FromAdvisor(Advisor{
		Name:       "张老师",
		Department: "计算机学院",
		Research:   "机器学习 / 计算机视觉/",
	})

	assert.Equal(t, "advisor:张老师", c.ID)
	assert.Equal(t, []string{"计算机学院", "机器学习", "计算机视觉"}, c.Tags)
	assert.Equal(t, "机器学习 / 计算机视觉/", c.Description)
}

func TestFromRepository(t *testing.T) {
	tests := []struct {
		name    string
		repo    Repository
		wantID  string
		wantURL string
		tags    []string
	}{
		{
			name:    "full name",
			repo:    Repository{FullName: "vuejs/core", Stars: 100, Language: "TypeScript", MatchedTopic: "vue"},
			wantID:  "github:vuejs/core",
			wantURL: "https://github.com/vuejs/core",
			tags:    []string{"TypeScript", "vue"},
		},
		{
			name:    "owner and name",
			repo:    Repository{Owner: "tiangolo", Name: "fastapi", HTMLURL: "https://github.com/tiangolo/fastapi"},
			wantID:  "github:tiangolo/fastapi",
			wantURL: "https://github.com/tiangolo/fastapi",
			tags:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromRepository(tt.repo)
			assert.Equal(t, tt.wantID, c.ID)
			assert.Equal(t, tt.wantURL, c.URL)
			assert.Equal(t, tt.tags, c.Tags)
			assert.Equal(t, SourceRepositoryFeed, c.Source)
			assert.Equal(t, float64(tt.repo.Stars), c.Popularity)
		})
	}
}

func TestNormalize_NegativePopularityClamped(t *testing.T) {
	c := Normalize(KindRepository, Repository{FullName: "a/b", Stars: -5})
	assert.Equal(t, 0.0, c.Popularity)
}

func TestNormalize_WrongRecordDegrades(t *testing.T) {
	c := Normalize(KindPractice, "not a practice")

	assert.Equal(t, KindPractice, c.Kind)
	assert.Equal(t, SourceKnowledgeBase, c.Source)
	assert.Empty(t, c.Name)
	assert.Zero(t, c.Popularity)
}

func TestNormalize_Dispatch(t *testing.T) {
	assert.Equal(t, "course:X1", Normalize(KindCourse, MajorCourse{Major: "m", Course: Course{Code: "X1"}}).ID)
	assert.Equal(t, "practice:p", Normalize(KindPractice, Practice{Name: "p"}).ID)
	assert.Equal(t, "advisor:a", Normalize(KindAdvisor, Advisor{Name: "a"}).ID)
	assert.True(t, KindJob.Valid())
	assert.False(t, Kind("podcast").Valid())
}
