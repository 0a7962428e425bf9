package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/pathfinder/internal/career"
	"github.com/vijay-prabhu/pathfinder/internal/database"
	"github.com/vijay-prabhu/pathfinder/internal/recommend"
)

const (
	reasonWidth      = 48
	descriptionWidth = 40
)

func (p *Printer) table(data interface{}) error {
	switch v := data.(type) {
	case []recommend.ScoredCandidate:
		return recommendationsTable(p.W, v)
	case *recommend.RepoPicks:
		return repoPicksTable(p.W, v)
	case []career.Ranked:
		return p.careersTable(v)
	case []database.CareerFeedback:
		return feedbackTable(p.W, v)
	case *database.CareerFeedback:
		return feedbackLine(p.W, v)
	case []database.PlanSummary:
		return plansTable(p.W, v)
	case *database.Plan:
		return planDetail(p.W, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func recommendationsTable(w io.Writer, items []recommend.ScoredCandidate) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return nil
	}

	t := tablewriter.NewWriter(w)
	t.Header("#", "KIND", "NAME", "SCORE", "REASON")
	for i, it := range items {
		if err := t.Append([]string{
			strconv.Itoa(i + 1),
			string(it.Kind),
			truncate(it.Name, 36),
			formatScore(it.Score),
			truncate(it.MatchReason, reasonWidth),
		}); err != nil {
			return err
		}
	}
	return t.Render()
}

func repoPicksTable(w io.Writer, picks *recommend.RepoPicks) error {
	if len(picks.Repositories) == 0 {
		fmt.Fprintln(w, "No repositories found.")
		return nil
	}

	t := tablewriter.NewWriter(w)
	t.Header("REPOSITORY", "STARS", "LANGUAGE", "TOPIC", "DESCRIPTION")
	for _, r := range picks.Repositories {
		if err := t.Append([]string{
			r.Key(),
			strconv.Itoa(r.Stars),
			orDash(r.Language),
			orDash(r.MatchedTopic),
			truncate(r.Description, descriptionWidth),
		}); err != nil {
			return err
		}
	}
	if err := t.Render(); err != nil {
		return err
	}

	source := "live"
	if picks.FromCache {
		source = "cache"
	}
	fmt.Fprintf(w, "Picked %d of %d candidates (%s)\n", len(picks.Repositories), picks.Fetched, source)
	return nil
}

func (p *Printer) careersTable(ranked []career.Ranked) error {
	if len(ranked) == 0 {
		fmt.Fprintln(p.W, "No careers found.")
		return nil
	}

	t := tablewriter.NewWriter(p.W)
	t.Header("#", "CAREER", "SCORE", "LOCATIONS", "SALARY", "FEEDBACK", "REASON")

	fallbacks := 0
	for i, r := range ranked {
		name := r.CareerName
		if r.Fallback {
			fallbacks++
			name += " *"
			if p.Mark != nil {
				name = p.Mark(name)
			}
		}

		locations := career.Nationwide
		if !r.Unrestricted() {
			locations = strings.Join(r.AllowedLocations, "/")
		}

		if err := t.Append([]string{
			strconv.Itoa(i + 1),
			name,
			formatScore(r.Score),
			truncate(locations, 24),
			orDash(r.SalaryRange),
			formatVotes(r.Likes, r.Dislikes),
			truncate(r.MatchReason, reasonWidth),
		}); err != nil {
			return err
		}
	}
	if err := t.Render(); err != nil {
		return err
	}

	if fallbacks > 0 {
		fmt.Fprintln(p.W, "* fallback suggestion: no career matched your interests directly")
	}
	return nil
}

func feedbackTable(w io.Writer, list []database.CareerFeedback) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No career feedback recorded.")
		return nil
	}

	t := tablewriter.NewWriter(w)
	t.Header("CAREER", "LIKES", "DISLIKES", "UPDATED")
	for _, f := range list {
		if err := t.Append([]string{
			f.CareerName,
			strconv.Itoa(f.Likes),
			strconv.Itoa(f.Dislikes),
			f.UpdatedAt.Format("Jan 02, 2006 15:04"),
		}); err != nil {
			return err
		}
	}
	return t.Render()
}

func feedbackLine(w io.Writer, f *database.CareerFeedback) error {
	_, err := fmt.Fprintf(w, "%s: %d like(s), %d dislike(s)\n", f.CareerName, f.Likes, f.Dislikes)
	return err
}

func plansTable(w io.Writer, plans []database.PlanSummary) error {
	if len(plans) == 0 {
		fmt.Fprintln(w, "No saved plans.")
		return nil
	}

	t := tablewriter.NewWriter(w)
	t.Header("ID", "TITLE", "INTERESTS", "ITEMS", "CREATED")
	for _, pl := range plans {
		if err := t.Append([]string{
			shortID(pl.ID),
			truncate(pl.Title, 30),
			truncate(strings.Join(pl.Interests, ", "), 30),
			strconv.Itoa(pl.ItemCount),
			pl.CreatedAt.Format("Jan 02, 2006 15:04"),
		}); err != nil {
			return err
		}
	}
	return t.Render()
}

func planDetail(w io.Writer, pl *database.Plan) error {
	fmt.Fprintf(w, "Plan:        %s\n", pl.Title)
	fmt.Fprintf(w, "ID:          %s\n", pl.ID)
	if len(pl.Interests) > 0 {
		fmt.Fprintf(w, "Interests:   %s\n", strings.Join(pl.Interests, ", "))
	}
	if pl.Location != "" {
		fmt.Fprintf(w, "Location:    %s\n", pl.Location)
	}
	fmt.Fprintf(w, "Created:     %s\n", pl.CreatedAt.Format("Jan 02, 2006 15:04"))

	if len(pl.Items) == 0 {
		return nil
	}
	fmt.Fprintln(w)

	t := tablewriter.NewWriter(w)
	t.Header("#", "KIND", "NAME", "SCORE", "LINK")
	for i, it := range pl.Items {
		if err := t.Append([]string{
			strconv.Itoa(i + 1),
			string(it.Kind),
			truncate(it.Name, 36),
			formatScore(it.Score),
			orDash(it.URL),
		}); err != nil {
			return err
		}
	}
	return t.Render()
}

// formatVotes renders like/dislike counts as "+likes/-dislikes"
func formatVotes(likes, dislikes int) string {
	if likes == 0 && dislikes == 0 {
		return "-"
	}
	return fmt.Sprintf("+%d/-%d", likes, dislikes)
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to max runes
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
