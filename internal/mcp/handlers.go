package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/pathfinder/internal/career"
	"github.com/vijay-prabhu/pathfinder/internal/planner"
	"github.com/vijay-prabhu/pathfinder/internal/recommend"
)

const defaultPlanLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["recommend"] = s.handleRecommend
	s.handlers["random_repos"] = s.handleRandomRepos
	s.handlers["match_careers"] = s.handleMatchCareers
	s.handlers["career_feedback"] = s.handleCareerFeedback
	s.handlers["list_plans"] = s.handleListPlans
	s.handlers["get_plan"] = s.handleGetPlan
}

// interestList accepts either a JSON array or a comma-separated string
type interestList []string

func (l *interestList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = planner.CleanInterests(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("interests must be an array of strings or a comma-separated string")
	}
	*l = planner.SplitInterests(s)
	return nil
}

func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 || strings.TrimSpace(string(params)) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

type recommendParams struct {
	Interests    interestList               `json:"interests"`
	MaxItems     int                        `json:"max_items"`
	IncludeRepos bool                       `json:"include_repos"`
	Seed         *uint64                    `json:"seed"`
	Weights      *recommend.WeightOverrides `json:"weights"`
}

func (s *Server) handleRecommend(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p recommendParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if len(p.Interests) == 0 {
		return nil, errors.New("interests is required")
	}

	return s.planner.Recommend(ctx, planner.RecommendRequest{
		Interests:    p.Interests,
		MaxItems:     p.MaxItems,
		IncludeRepos: p.IncludeRepos,
		Weights:      p.Weights,
		Seed:         p.Seed,
	})
}

type randomReposParams struct {
	Interests interestList `json:"interests"`
	Seed      *uint64      `json:"seed"`
}

func (s *Server) handleRandomRepos(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p randomReposParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if len(p.Interests) == 0 {
		return nil, errors.New("interests is required")
	}

	picks, err := s.planner.RandomRepos(ctx, p.Interests, p.Seed)
	if err != nil {
		return nil, fmt.Errorf("repository feed error: %w", err)
	}
	return picks, nil
}

type matchCareersParams struct {
	Interests           interestList `json:"interests"`
	Location            string       `json:"location"`
	PrioritizeStrategic bool         `json:"prioritize_strategic"`
	HideDisliked        bool         `json:"hide_disliked"`
}

type matchCareersResult struct {
	Careers  []career.Ranked `json:"careers"`
	Fallback bool            `json:"fallback"`
}

func (s *Server) handleMatchCareers(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p matchCareersParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	ranked, err := s.planner.MatchCareers(ctx, planner.CareerRequest{
		Interests:           p.Interests,
		Location:            p.Location,
		PrioritizeStrategic: p.PrioritizeStrategic,
		HideDisliked:        p.HideDisliked,
	})
	if err != nil {
		return nil, err
	}

	result := matchCareersResult{Careers: ranked}
	for _, r := range ranked {
		if r.Fallback {
			result.Fallback = true
			break
		}
	}
	return result, nil
}

type careerFeedbackParams struct {
	Career   string `json:"career"`
	Feedback string `json:"feedback"`
}

func (s *Server) handleCareerFeedback(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p careerFeedbackParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Career) == "" {
		return nil, errors.New("career is required")
	}
	if strings.TrimSpace(p.Feedback) == "" {
		return nil, errors.New("feedback is required")
	}
	return s.planner.RecordCareerFeedback(ctx, p.Career, p.Feedback)
}

type listPlansParams struct {
	Limit int `json:"limit"`
}

func (s *Server) handleListPlans(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listPlansParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.Limit <= 0 {
		p.Limit = defaultPlanLimit
	}

	plans, err := s.planner.Plans(ctx, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return plans, nil
}

type getPlanParams struct {
	ID string `json:"id"`
}

func (s *Server) handleGetPlan(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getPlanParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.ID) == "" {
		return nil, errors.New("id is required")
	}
	return s.planner.Plan(ctx, p.ID)
}
