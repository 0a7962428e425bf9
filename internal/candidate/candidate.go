package candidate

import (
	"fmt"
	"strings"
)

// Kind identifies what a candidate recommends
type Kind string

const (
	KindCourse     Kind = "course"
	KindPractice   Kind = "practice"
	KindJob        Kind = "job"
	KindAdvisor    Kind = "advisor"
	KindRepository Kind = "repository"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	switch k {
	case KindCourse, KindPractice, KindJob, KindAdvisor, KindRepository:
		return true
	default:
		return false
	}
}

// Source determines which scoring bonus applies to a candidate
type Source string

const (
	SourceKnowledgeBase  Source = "knowledge_base"
	SourceRepositoryFeed Source = "repository_feed"
)

// Candidate is a normalized recommendable unit.
//
// IDs are unique within a single ranking call only. Popularity is the star
// count for repository candidates and the optional heat value for
// knowledge-base items.
type Candidate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Source      Source   `json:"source"`
	URL         string   `json:"url,omitempty"`
	Popularity  float64  `json:"popularity"`
}

// FromCourse normalizes a course listed under the given major
func FromCourse(major string, c Course) Candidate {
	return Candidate{
		ID:          "course:" + c.Code,
		Name:        c.Name,
		Kind:        KindCourse,
		Description: c.Outline,
		Tags:        compactTags(c.Level, major),
		Source:      SourceKnowledgeBase,
		URL:         c.Link,
		Popularity:  nonNegative(c.Heat),
	}
}

// FromPractice normalizes a practice resource
func FromPractice(p Practice) Candidate {
	return Candidate{
		ID:          "practice:" + p.Name,
		Name:        p.Name,
		Kind:        KindPractice,
		Description: p.Desc,
		Tags:        compactTags(p.Type),
		Source:      SourceKnowledgeBase,
		URL:         p.Link,
		Popularity:  nonNegative(p.Heat),
	}
}

// FromJob normalizes a job posting
func FromJob(j JobPosting) Candidate {
	return Candidate{
		ID:          fmt.Sprintf("jd:%s_%s", j.Company, j.Position),
		Name:        fmt.Sprintf("%s - %s", j.Company, j.Position),
		Kind:        KindJob,
		Description: j.JD,
		Tags:        compactTags(j.Skills...),
		Source:      SourceKnowledgeBase,
		URL:         j.Link,
		Popularity:  nonNegative(j.Heat),
	}
}

// FromAdvisor normalizes an advisor. Research areas are "/"-separated.
func FromAdvisor(a Advisor) Candidate {
	tags := []string{a.Department}
	tags = append(tags, strings.Split(a.Research, "/")...)

	return Candidate{
		ID:          "advisor:" + a.Name,
		Name:        a.Name,
		Kind:        KindAdvisor,
		Description: a.Research,
		Tags:        compactTags(tags...),
		Source:      SourceKnowledgeBase,
		URL:         a.Homepage,
		Popularity:  nonNegative(a.Heat),
	}
}

// FromRepository normalizes a repository from the repository feed
func FromRepository(r Repository) Candidate {
	key := r.Key()
	url := r.HTMLURL
	if url == "" && key != "" {
		url = "https://github.com/" + key
	}

	return Candidate{
		ID:          "github:" + key,
		Name:        key,
		Kind:        KindRepository,
		Description: r.Description,
		Tags:        compactTags(r.Language, r.MatchedTopic),
		Source:      SourceRepositoryFeed,
		URL:         url,
		Popularity:  nonNegative(float64(r.Stars)),
	}
}

// Normalize converts a raw record of the given kind. Records of the wrong
// type degrade to an empty candidate of that kind rather than failing.
func Normalize(kind Kind, record any) Candidate {
	switch kind {
	case KindCourse:
		switch c := record.(type) {
		case MajorCourse:
			return FromCourse(c.Major, c.Course)
		case Course:
			return FromCourse("", c)
		}
	case KindPractice:
		if p, ok := record.(Practice); ok {
			return FromPractice(p)
		}
	case KindJob:
		if j, ok := record.(JobPosting); ok {
			return FromJob(j)
		}
	case KindAdvisor:
		if a, ok := record.(Advisor); ok {
			return FromAdvisor(a)
		}
	case KindRepository:
		if r, ok := record.(Repository); ok {
			return FromRepository(r)
		}
	}

	src := SourceKnowledgeBase
	if kind == KindRepository {
		src = SourceRepositoryFeed
	}
	return Candidate{Kind: kind, Source: src}
}

// compactTags trims values and drops empty ones
func compactTags(values ...string) []string {
	tags := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
