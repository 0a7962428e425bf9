package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/pathfinder/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at %s\n", configPath)
		fmt.Println("Use 'pathfinder config show' to view current configuration")
		return nil
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Put your knowledge base at %s\n", cfg.Knowledge.Path)
	fmt.Println("  2. Optionally export GITHUB_TOKEN to use the GitHub search API")
	fmt.Println("  3. Run 'pathfinder recommend <interest>' to get started")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found, using defaults. Run 'pathfinder config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# pathfinder configuration

[database]
path = "~/.local/share/pathfinder/pathfinder.db"

[knowledge]
path = "~/.local/share/pathfinder/knowledge_base.json"

[github]
# token = ""            # or export GITHUB_TOKEN
api_base_url = "https://api.github.com"
web_base_url = "https://github.com"
timeout_seconds = 15
requests_per_minute = 30

[weights]
interest_name_weight = 30.0
interest_desc_weight = 18.0
tag_match_weight = 12.0
kb_base_score = 6.0
source_repository_bonus = 5.0
source_kb_bonus = 2.0
repository_popularity_weight_factor = 6.0
repository_popularity_max_bonus = 40.0
random_tie_breaker = 1.5   # 0 disables jitter

[recommend]
max_items = 12
fetch_per_topic = 30
pick_total = 8

[career]
# table_path = "~/.config/pathfinder/careers.toml"
default_location = "全国"
strategic_bonus = 2.0
hide_disliked = false  # skip careers you disliked more than liked

[log]
level = "info"      # debug, info, warn, error
format = "console"  # console, json

[mcp]
enabled = true
transport = "stdio"
`
