package planner

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
	"github.com/vijay-prabhu/pathfinder/internal/career"
	"github.com/vijay-prabhu/pathfinder/internal/database"
	"github.com/vijay-prabhu/pathfinder/internal/logger"
	"github.com/vijay-prabhu/pathfinder/internal/recommend"
)

// ErrNoStore is returned by plan and feedback operations when no database is
// configured
var ErrNoStore = errors.New("plan storage is not configured")

// ErrUnknownCareer is returned when feedback names a career not in the table
var ErrUnknownCareer = errors.New("unknown career")

// CandidateSource supplies knowledge-base candidates
type CandidateSource interface {
	Candidates() []candidate.Candidate
}

// Store persists saved plans and career feedback
type Store interface {
	CreatePlan(ctx context.Context, p *database.Plan) error
	GetPlan(ctx context.Context, id string) (*database.Plan, error)
	ListPlans(ctx context.Context, limit int) ([]database.PlanSummary, error)
	DeletePlan(ctx context.Context, id string) error
	RecordCareerFeedback(ctx context.Context, careerName string, kind database.FeedbackKind) (*database.CareerFeedback, error)
	ListCareerFeedback(ctx context.Context) ([]database.CareerFeedback, error)
}

// Options configures a Planner
type Options struct {
	Weights         recommend.WeightConfig
	MaxItems        int
	DefaultLocation string
	// HideDisliked drops disliked careers from every match
	HideDisliked bool
}

// Planner ties the knowledge base, repository feed, career matcher and plan
// storage together for the CLI and MCP server
type Planner struct {
	source  CandidateSource
	picker  *recommend.RepoPicker
	matcher *career.Matcher
	store   Store
	opts    Options
	log     logger.Logger
}

// New creates a Planner. picker and store may be nil.
func New(source CandidateSource, picker *recommend.RepoPicker, matcher *career.Matcher, store Store, opts Options, log logger.Logger) *Planner {
	if opts.MaxItems <= 0 {
		opts.MaxItems = recommend.DefaultMaxItems
	}
	if opts.DefaultLocation == "" {
		opts.DefaultLocation = career.Nationwide
	}
	if log == nil {
		log = logger.NewNop()
	}
	if matcher == nil {
		matcher = career.NewMatcher(career.DefaultTable())
	}
	return &Planner{
		source:  source,
		picker:  picker,
		matcher: matcher,
		store:   store,
		opts:    opts,
		log:     log,
	}
}

// RecommendRequest describes a recommendation query
type RecommendRequest struct {
	Interests    []string                   `json:"interests"`
	MaxItems     int                        `json:"max_items,omitempty"`
	IncludeRepos bool                       `json:"include_repos"`
	Weights      *recommend.WeightOverrides `json:"weights,omitempty"`
	// Seed makes jitter and repository sampling reproducible
	Seed *uint64 `json:"seed,omitempty"`
}

// RecommendResult holds ranked items and, when requested, the repository picks
// that were mixed into the ranking
type RecommendResult struct {
	Interests []string                    `json:"interests"`
	Items     []recommend.ScoredCandidate `json:"items"`
	Repos     *recommend.RepoPicks        `json:"repos,omitempty"`
}

// Recommend ranks knowledge-base items, optionally mixed with repository
// picks. A repository feed failure degrades to knowledge-base only results.
func (p *Planner) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	interests := CleanInterests(req.Interests)

	weights := p.opts.Weights
	if req.Weights != nil {
		weights = req.Weights.Apply(weights)
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}

	maxItems := req.MaxItems
	if maxItems <= 0 {
		maxItems = p.opts.MaxItems
	}

	rng := newRand(req.Seed)
	result := &RecommendResult{Interests: interests}

	var cands []candidate.Candidate
	if p.source != nil {
		cands = p.source.Candidates()
	}

	if req.IncludeRepos && p.picker != nil && len(interests) > 0 {
		picks, err := p.picker.Pick(ctx, interests, rng)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			p.log.WithError(err).Warn("repository picks unavailable", map[string]interface{}{"interests": interests})
		default:
			result.Repos = picks
			cands = recommend.Combine(cands, recommend.Candidates(picks.Repositories))
		}
	}

	result.Items = recommend.NewScorer(weights, rng).Rank(cands, interests, maxItems)

	p.log.Debug("recommendations ranked", map[string]interface{}{
		"interests":  len(interests),
		"candidates": len(cands),
		"returned":   len(result.Items),
	})
	return result, nil
}

// RandomRepos returns a popularity-weighted sample of repositories
func (p *Planner) RandomRepos(ctx context.Context, interests []string, seed *uint64) (*recommend.RepoPicks, error) {
	if p.picker == nil {
		return &recommend.RepoPicks{Repositories: []candidate.Repository{}}, nil
	}
	return p.picker.Pick(ctx, CleanInterests(interests), newRand(seed))
}

// CareerRequest describes a career matching query
type CareerRequest struct {
	Interests           []string
	Location            string
	PrioritizeStrategic bool
	// HideDisliked drops careers with more dislikes than likes
	HideDisliked bool
}

// MatchCareers ranks careers, substituting the configured default location
// when the request has none, and attaches feedback counts to each result.
// Feedback that cannot be loaded is skipped with a warning.
func (p *Planner) MatchCareers(ctx context.Context, req CareerRequest) ([]career.Ranked, error) {
	location := req.Location
	if strings.TrimSpace(location) == "" {
		location = p.opts.DefaultLocation
	}

	feedback, err := p.feedbackByCareer(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.log.WithError(err).Warn("career feedback unavailable", nil)
	}

	var exclude []string
	if req.HideDisliked || p.opts.HideDisliked {
		for name, f := range feedback {
			if f.Disliked() {
				exclude = append(exclude, name)
			}
		}
	}

	ranked := p.matcher.Match(career.Request{
		Interests:           req.Interests,
		Location:            location,
		PrioritizeStrategic: req.PrioritizeStrategic,
		Exclude:             exclude,
	})
	for i := range ranked {
		f := feedback[ranked[i].CareerName]
		ranked[i].Likes = f.Likes
		ranked[i].Dislikes = f.Dislikes
	}

	p.log.Debug("careers matched", map[string]interface{}{
		"returned": len(ranked),
		"excluded": len(exclude),
	})
	return ranked, nil
}

// RecordCareerFeedback stores a like or dislike for a career in the table
func (p *Planner) RecordCareerFeedback(ctx context.Context, careerName, kind string) (*database.CareerFeedback, error) {
	if p.store == nil {
		return nil, ErrNoStore
	}

	k, err := database.ParseFeedbackKind(kind)
	if err != nil {
		return nil, err
	}

	careerName = strings.TrimSpace(careerName)
	known := false
	for _, prof := range p.matcher.Table() {
		if prof.CareerName == careerName {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCareer, careerName)
	}

	f, err := p.store.RecordCareerFeedback(ctx, careerName, k)
	if err != nil {
		return nil, err
	}
	p.log.Info("career feedback recorded", map[string]interface{}{"career": careerName, "feedback": string(k)})
	return f, nil
}

// CareerFeedback lists the recorded feedback, ordered by career name
func (p *Planner) CareerFeedback(ctx context.Context) ([]database.CareerFeedback, error) {
	if p.store == nil {
		return nil, ErrNoStore
	}
	return p.store.ListCareerFeedback(ctx)
}

func (p *Planner) feedbackByCareer(ctx context.Context) (map[string]database.CareerFeedback, error) {
	if p.store == nil {
		return nil, nil
	}

	list, err := p.store.ListCareerFeedback(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]database.CareerFeedback, len(list))
	for _, f := range list {
		out[f.CareerName] = f
	}
	return out, nil
}

// Weights returns the configured scoring weights
func (p *Planner) Weights() recommend.WeightConfig {
	return p.opts.Weights
}

// Careers returns the career table in use
func (p *Planner) Careers() career.Table {
	return p.matcher.Table()
}

// SavePlan freezes ranked items into a new plan
func (p *Planner) SavePlan(ctx context.Context, title, location string, interests []string, items []recommend.ScoredCandidate) (*database.Plan, error) {
	if p.store == nil {
		return nil, ErrNoStore
	}

	plan := &database.Plan{
		Title:     strings.TrimSpace(title),
		Interests: CleanInterests(interests),
		Location:  strings.TrimSpace(location),
		Items:     make([]database.PlanItem, 0, len(items)),
	}
	for _, it := range items {
		plan.Items = append(plan.Items, database.PlanItem{
			CandidateID: it.ID,
			Name:        it.Name,
			Kind:        it.Kind,
			URL:         it.URL,
			Score:       it.Score,
			MatchReason: it.MatchReason,
		})
	}

	if err := p.store.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	p.log.Info("plan saved", map[string]interface{}{"id": plan.ID, "items": len(plan.Items)})
	return plan, nil
}

// Plan returns a saved plan by id or unique id prefix
func (p *Planner) Plan(ctx context.Context, id string) (*database.Plan, error) {
	if p.store == nil {
		return nil, ErrNoStore
	}
	return p.store.GetPlan(ctx, id)
}

// Plans lists saved plans, newest first
func (p *Planner) Plans(ctx context.Context, limit int) ([]database.PlanSummary, error) {
	if p.store == nil {
		return nil, ErrNoStore
	}
	return p.store.ListPlans(ctx, limit)
}

// DeletePlan removes a saved plan. Unique id prefixes are resolved first.
func (p *Planner) DeletePlan(ctx context.Context, id string) error {
	plan, err := p.Plan(ctx, id)
	if err != nil {
		return err
	}
	if err := p.store.DeletePlan(ctx, plan.ID); err != nil {
		return err
	}
	p.log.Info("plan deleted", map[string]interface{}{"id": plan.ID})
	return nil
}

// CleanInterests trims interests and drops blanks and duplicates, keeping order
func CleanInterests(interests []string) []string {
	seen := make(map[string]bool, len(interests))
	out := make([]string, 0, len(interests))
	for _, i := range interests {
		i = strings.TrimSpace(i)
		if i == "" || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out
}

// SplitInterests parses a comma-separated interest list, accepting the
// full-width comma as well
func SplitInterests(s string) []string {
	s = strings.ReplaceAll(s, "，", ",")
	return CleanInterests(strings.Split(s, ","))
}

func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return recommend.NewSeededRand(*seed)
	}
	return recommend.NewRand()
}
