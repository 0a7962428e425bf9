package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
)

// PlanItem is one recommendation frozen into a saved plan
type PlanItem struct {
	CandidateID string         `json:"candidate_id"`
	Name        string         `json:"name"`
	Kind        candidate.Kind `json:"kind"`
	URL         string         `json:"url,omitempty"`
	Score       float64        `json:"score"`
	MatchReason string         `json:"match_reason"`
}

// Plan is a saved learning plan
type Plan struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Interests []string   `json:"interests"`
	Location  string     `json:"location,omitempty"`
	Items     []PlanItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

// PlanSummary is a plan without its items, for listings
type PlanSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Interests []string  `json:"interests"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackKind is a vote on a career
type FeedbackKind string

// Feedback kinds
const (
	FeedbackLike    FeedbackKind = "like"
	FeedbackDislike FeedbackKind = "dislike"
)

// ParseFeedbackKind accepts "like" or "dislike", case-insensitively
func ParseFeedbackKind(s string) (FeedbackKind, error) {
	switch k := FeedbackKind(strings.ToLower(strings.TrimSpace(s))); k {
	case FeedbackLike, FeedbackDislike:
		return k, nil
	default:
		return "", fmt.Errorf("feedback must be 'like' or 'dislike', got '%s'", s)
	}
}

// CareerFeedback holds the vote counts for one career
type CareerFeedback struct {
	CareerName string    `json:"career_name"`
	Likes      int       `json:"likes"`
	Dislikes   int       `json:"dislikes"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Disliked reports whether the career has more dislikes than likes
func (f CareerFeedback) Disliked() bool {
	return f.Dislikes > f.Likes
}
