package cli

import (
	"fmt"

	"github.com/vijay-prabhu/pathfinder/internal/career"
	"github.com/vijay-prabhu/pathfinder/internal/config"
	"github.com/vijay-prabhu/pathfinder/internal/database"
	"github.com/vijay-prabhu/pathfinder/internal/github"
	"github.com/vijay-prabhu/pathfinder/internal/knowledge"
	"github.com/vijay-prabhu/pathfinder/internal/logger"
	"github.com/vijay-prabhu/pathfinder/internal/output"
	"github.com/vijay-prabhu/pathfinder/internal/planner"
	"github.com/vijay-prabhu/pathfinder/internal/recommend"
)

// app holds everything a command needs
type app struct {
	cfg     *config.Config
	log     logger.Logger
	db      *database.DB
	planner *planner.Planner
}

// loadApp builds the planner from configuration. The database is opened
// only when needed, since it doubles as the repository cache.
func loadApp(needDB bool) (*app, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	a := &app{cfg: cfg, log: log}

	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return nil, err
	}

	table := career.DefaultTable()
	if cfg.Career.TablePath != "" {
		table, err = career.LoadTable(cfg.Career.TablePath)
		if err != nil {
			return nil, err
		}
	}

	var store planner.Store
	var cache recommend.RepoCache
	if needDB {
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
		store = db
		cache = db
	}

	client := github.NewClient(github.Config{
		Token:             cfg.GitHub.Token,
		APIBaseURL:        cfg.GitHub.APIBaseURL,
		WebBaseURL:        cfg.GitHub.WebBaseURL,
		Timeout:           cfg.GitHub.Timeout(),
		RequestsPerMinute: cfg.GitHub.RequestsPerMinute,
		UserAgent:         "pathfinder/" + version,
	}, log)

	picker := recommend.NewRepoPicker(client, cache, log, recommend.RepoPickerConfig{
		FetchPerTopic: cfg.Recommend.FetchPerTopic,
		PickTotal:     cfg.Recommend.PickTotal,
	})

	matcher := career.NewMatcher(table, career.WithStrategicBonus(cfg.Career.StrategicBonus))
	a.planner = planner.New(kb, picker, matcher, store, planner.Options{
		Weights:         cfg.Weights,
		MaxItems:        cfg.Recommend.MaxItems,
		DefaultLocation: cfg.Career.DefaultLocation,
		HideDisliked:    cfg.Career.HideDisliked,
	}, log)

	log.Debug("app loaded", map[string]interface{}{
		"knowledge_items": len(kb.Candidates()),
		"careers":         len(table),
		"github_token":    client.HasToken(),
	})
	return a, nil
}

// Close releases the database and flushes logs
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	a.log.Sync()
}

// printer returns an output printer honoring --output, coloring fallback
// rows when stdout is a terminal
func printer() *output.Printer {
	t := NewTerminal()
	return output.NewPrinter(outputFmt, func(s string) string {
		return t.Color(ColorYellow, s)
	})
}
