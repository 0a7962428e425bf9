package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos [interest...]",
	Short: "Pick popular GitHub repositories for your interests",
	Long: `Fetch popular repositories for each interest and return a sample weighted
by stars, so well-known projects are likely but not guaranteed.

Set GITHUB_TOKEN (or github.token) to use the search API; without a token the
trending pages are used. Fetched repositories are cached and reused when
GitHub is unreachable.

Examples:
  pathfinder repos 机器学习
  pathfinder repos go rust --seed 7`,
	RunE: runRepos,
}

var (
	reposInterests string
	reposSeed      uint64
)

func init() {
	rootCmd.AddCommand(reposCmd)

	reposCmd.Flags().StringVarP(&reposInterests, "interests", "i", "", "Comma-separated interests")
	reposCmd.Flags().Uint64Var(&reposSeed, "seed", 0, "Seed for reproducible sampling")
}

func runRepos(cmd *cobra.Command, args []string) error {
	interests := interestsFrom(args, reposInterests)
	if len(interests) == 0 {
		return fmt.Errorf("at least one interest is required")
	}

	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	var seed *uint64
	if cmd.Flags().Changed("seed") {
		seed = &reposSeed
	}

	picks, err := a.planner.RandomRepos(cmd.Context(), interests, seed)
	if err != nil {
		return fmt.Errorf("failed to pick repositories: %w", err)
	}

	return printer().Print(picks)
}
