package config

import (
	"time"

	"github.com/vijay-prabhu/pathfinder/internal/career"
	"github.com/vijay-prabhu/pathfinder/internal/recommend"
)

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig         `toml:"database"`
	Knowledge KnowledgeConfig        `toml:"knowledge"`
	GitHub    GitHubConfig           `toml:"github"`
	Weights   recommend.WeightConfig `toml:"weights"`
	Recommend RecommendConfig        `toml:"recommend"`
	Career    CareerConfig           `toml:"career"`
	Log       LogConfig              `toml:"log"`
	MCP       MCPConfig              `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// KnowledgeConfig points at the curated knowledge base
type KnowledgeConfig struct {
	Path string `toml:"path"`
}

// GitHubConfig contains repository feed settings
type GitHubConfig struct {
	// Token may be left empty and supplied through GITHUB_TOKEN
	Token             string `toml:"token"`
	APIBaseURL        string `toml:"api_base_url"`
	WebBaseURL        string `toml:"web_base_url"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// Timeout returns the request timeout as a duration
func (g GitHubConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// RecommendConfig contains ranking and repository pick settings
type RecommendConfig struct {
	MaxItems      int `toml:"max_items"`
	FetchPerTopic int `toml:"fetch_per_topic"`
	PickTotal     int `toml:"pick_total"`
}

// CareerConfig contains career matching settings
type CareerConfig struct {
	// TablePath replaces the built-in career table when set
	TablePath       string  `toml:"table_path"`
	DefaultLocation string  `toml:"default_location"`
	StrategicBonus  float64 `toml:"strategic_bonus"`
	// HideDisliked drops careers with more dislikes than likes from matches
	HideDisliked bool `toml:"hide_disliked"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/pathfinder/pathfinder.db",
		},
		Knowledge: KnowledgeConfig{
			Path: "~/.local/share/pathfinder/knowledge_base.json",
		},
		GitHub: GitHubConfig{
			APIBaseURL:        "https://api.github.com",
			WebBaseURL:        "https://github.com",
			TimeoutSeconds:    15,
			RequestsPerMinute: 30,
		},
		Weights: recommend.DefaultWeights(),
		Recommend: RecommendConfig{
			MaxItems:      recommend.DefaultMaxItems,
			FetchPerTopic: recommend.DefaultFetchPerTopic,
			PickTotal:     recommend.DefaultPickTotal,
		},
		Career: CareerConfig{
			DefaultLocation: career.Nationwide,
			StrategicBonus:  career.DefaultStrategicBonus,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
