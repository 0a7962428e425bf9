package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/pathfinder/internal/planner"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [interest...]",
	Short: "Rank learning resources for your interests",
	Long: `Rank knowledge-base courses, practice, job postings and advisors against
your interests. With --repos, popular GitHub repositories are sampled and
ranked alongside them.

Examples:
  pathfinder recommend 机器学习 算法
  pathfinder recommend --interests "前端,Python开发" --repos
  pathfinder recommend 后端 --seed 42 -o json
  pathfinder recommend 机器学习 --save "ML 路线"`,
	RunE: runRecommend,
}

var (
	recInterests string
	recMax       int
	recRepos     bool
	recSeed      uint64
	recSave      string
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVarP(&recInterests, "interests", "i", "", "Comma-separated interests")
	recommendCmd.Flags().IntVarP(&recMax, "max", "n", 0, "Maximum number of results (default from config)")
	recommendCmd.Flags().BoolVar(&recRepos, "repos", false, "Include GitHub repositories")
	recommendCmd.Flags().Uint64Var(&recSeed, "seed", 0, "Seed for reproducible results")
	recommendCmd.Flags().StringVar(&recSave, "save", "", "Save the results as a plan with this title")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	interests := interestsFrom(args, recInterests)
	if len(interests) == 0 {
		return fmt.Errorf("at least one interest is required")
	}

	a, err := loadApp(recRepos || recSave != "")
	if err != nil {
		return err
	}
	defer a.Close()

	req := planner.RecommendRequest{
		Interests:    interests,
		MaxItems:     recMax,
		IncludeRepos: recRepos,
	}
	if cmd.Flags().Changed("seed") {
		req.Seed = &recSeed
	}

	res, err := a.planner.Recommend(ctx, req)
	if err != nil {
		return err
	}

	p := printer()
	if p.Format == "json" {
		if err := p.Print(res); err != nil {
			return err
		}
	} else if err := p.Print(res.Items); err != nil {
		return err
	}

	if recSave != "" {
		plan, err := a.planner.SavePlan(ctx, recSave, "", res.Interests, res.Items)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved plan %s (%s)\n", plan.Title, plan.ID)
	}
	return nil
}
