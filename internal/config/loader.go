package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TokenEnv is consulted when github.token is empty
const TokenEnv = "GITHUB_TOKEN"

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'pathfinder config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg.finish()
}

// LoadOrDefault is Load, except a missing file yields the defaults
func LoadOrDefault(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}
	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		return Default().finish()
	}
	return Load(path)
}

func (c *Config) finish() (*Config, error) {
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv(TokenEnv)
	}

	if err := c.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Database.Path, &c.Knowledge.Path, &c.Career.TablePath} {
		expanded, err := expandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Knowledge.Path == "" {
		errs = append(errs, errors.New("knowledge.path is required"))
	}

	if c.GitHub.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("github.timeout_seconds must be at least 1"))
	}
	if c.GitHub.RequestsPerMinute < 1 {
		errs = append(errs, errors.New("github.requests_per_minute must be at least 1"))
	}

	if err := c.Weights.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Recommend.MaxItems < 1 {
		errs = append(errs, errors.New("recommend.max_items must be at least 1"))
	}
	if c.Recommend.FetchPerTopic < 1 || c.Recommend.FetchPerTopic > 100 {
		errs = append(errs, errors.New("recommend.fetch_per_topic must be between 1 and 100"))
	}
	if c.Recommend.PickTotal < 1 {
		errs = append(errs, errors.New("recommend.pick_total must be at least 1"))
	}

	if math.IsNaN(c.Career.StrategicBonus) || math.IsInf(c.Career.StrategicBonus, 0) || c.Career.StrategicBonus < 0 {
		errs = append(errs, fmt.Errorf("career.strategic_bonus must be a finite non-negative number, got %g", c.Career.StrategicBonus))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be 'console' or 'json', got '%s'", c.Log.Format))
	}

	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates the directories for the database and knowledge base
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
		filepath.Dir(c.Knowledge.Path),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
