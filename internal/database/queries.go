package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vijay-prabhu/pathfinder/internal/candidate"
)

// ErrPlanNotFound is returned when a plan id does not exist
var ErrPlanNotFound = errors.New("plan not found")

// SaveRepositories upserts repositories into the cache keyed by full name
func (db *DB) SaveRepositories(ctx context.Context, repos []candidate.Repository) error {
	if len(repos) == 0 {
		return nil
	}

	now := time.Now()
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO repositories (
				full_name, owner, name, description, stars, language, html_url, matched_topic, fetched_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(full_name) DO UPDATE SET
				owner = excluded.owner,
				name = excluded.name,
				description = excluded.description,
				stars = excluded.stars,
				language = excluded.language,
				html_url = excluded.html_url,
				matched_topic = excluded.matched_topic,
				fetched_at = excluded.fetched_at
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range repos {
			key := r.Key()
			if key == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx,
				key, r.Owner, r.Name, r.Description, r.Stars, r.Language, r.HTMLURL, r.MatchedTopic, now,
			); err != nil {
				return fmt.Errorf("failed to cache %s: %w", key, err)
			}
		}
		return nil
	})
}

// ListRepositories returns cached repositories, most starred first.
// A limit of zero or less returns everything.
func (db *DB) ListRepositories(ctx context.Context, limit int) ([]candidate.Repository, error) {
	query := `
		SELECT full_name, owner, name, description, stars, language, html_url, matched_topic
		FROM repositories ORDER BY stars DESC, full_name ASC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	repos := []candidate.Repository{}
	for rows.Next() {
		var r candidate.Repository
		if err := rows.Scan(&r.FullName, &r.Owner, &r.Name, &r.Description, &r.Stars, &r.Language, &r.HTMLURL, &r.MatchedTopic); err != nil {
			return nil, err
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}

// CountRepositories returns the number of cached repositories
func (db *DB) CountRepositories(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM repositories").Scan(&n)
	return n, err
}

// CreatePlan inserts a new plan, assigning an id and timestamp
func (db *DB) CreatePlan(ctx context.Context, p *Plan) error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("plan title is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Items == nil {
		p.Items = []PlanItem{}
	}

	interests, err := json.Marshal(p.Interests)
	if err != nil {
		return fmt.Errorf("failed to encode interests: %w", err)
	}
	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO plans (id, title, interests, location, items, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Title, string(interests), p.Location, string(items), p.CreatedAt)
	return err
}

// GetPlan retrieves a plan by id. Unique id prefixes are accepted.
func (db *DB) GetPlan(ctx context.Context, id string) (*Plan, error) {
	if id = strings.TrimSpace(id); id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrPlanNotFound)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, title, interests, location, items, created_at
		FROM plans WHERE id = ? OR id LIKE ? || '%'
		ORDER BY (id = ?) DESC LIMIT 2
	`, id, id, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*Plan
	for rows.Next() {
		p := &Plan{}
		var interests, items string
		if err := rows.Scan(&p.ID, &p.Title, &interests, &p.Location, &items, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(interests), &p.Interests); err != nil {
			return nil, fmt.Errorf("failed to decode plan interests: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
			return nil, fmt.Errorf("failed to decode plan items: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(plans) == 0:
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	case plans[0].ID == id || len(plans) == 1:
		return plans[0], nil
	default:
		return nil, fmt.Errorf("ambiguous plan id prefix: %s", id)
	}
}

// ListPlans returns plan summaries, newest first
func (db *DB) ListPlans(ctx context.Context, limit int) ([]PlanSummary, error) {
	query := `
		SELECT id, title, interests, json_array_length(items), created_at
		FROM plans ORDER BY created_at DESC, id ASC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []PlanSummary{}
	for rows.Next() {
		var s PlanSummary
		var interests string
		if err := rows.Scan(&s.ID, &s.Title, &interests, &s.ItemCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(interests), &s.Interests); err != nil {
			return nil, fmt.Errorf("failed to decode plan interests: %w", err)
		}
		plans = append(plans, s)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan by its full id
func (db *DB) DeletePlan(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return nil
}

// RecordCareerFeedback adds one vote for a career and returns its new counts
func (db *DB) RecordCareerFeedback(ctx context.Context, careerName string, kind FeedbackKind) (*CareerFeedback, error) {
	careerName = strings.TrimSpace(careerName)
	if careerName == "" {
		return nil, errors.New("career name is required")
	}

	var likes, dislikes int
	switch kind {
	case FeedbackLike:
		likes = 1
	case FeedbackDislike:
		dislikes = 1
	default:
		return nil, fmt.Errorf("unknown feedback kind: %s", kind)
	}

	f := &CareerFeedback{CareerName: careerName}
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO career_feedback (career_name, like_count, dislike_count, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(career_name) DO UPDATE SET
				like_count = like_count + excluded.like_count,
				dislike_count = dislike_count + excluded.dislike_count,
				updated_at = excluded.updated_at
		`, careerName, likes, dislikes, time.Now())
		if err != nil {
			return err
		}

		return tx.QueryRowContext(ctx, `
			SELECT like_count, dislike_count, updated_at
			FROM career_feedback WHERE career_name = ?
		`, careerName).Scan(&f.Likes, &f.Dislikes, &f.UpdatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record career feedback: %w", err)
	}
	return f, nil
}

// ListCareerFeedback returns the vote counts of every career that has any,
// ordered by name
func (db *DB) ListCareerFeedback(ctx context.Context) ([]CareerFeedback, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT career_name, like_count, dislike_count, updated_at
		FROM career_feedback ORDER BY career_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CareerFeedback{}
	for rows.Next() {
		var f CareerFeedback
		if err := rows.Scan(&f.CareerName, &f.Likes, &f.Dislikes, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
