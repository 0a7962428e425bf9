package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/pathfinder/internal/planner"
)

var careersCmd = &cobra.Command{
	Use:   "careers [interest...]",
	Short: "Match career directions to your interests",
	Long: `Rank career directions by interest overlap. Careers restricted to other
cities are excluded; careers hiring in your city score higher. When nothing
matches, related or general engineering careers are suggested and marked
with *. Likes and dislikes recorded with 'careers feedback' are shown next
to each career.

Examples:
  pathfinder careers 机器学习 算法
  pathfinder careers 后端 --location 北京
  pathfinder careers 硬件 --strategic
  pathfinder careers 后端 --hide-disliked`,
	RunE: runCareers,
}

var careersFeedbackCmd = &cobra.Command{
	Use:   "feedback [career like|dislike]",
	Short: "Like or dislike a career, or list recorded feedback",
	Long: `Record a vote for a career from the career table, or list every
recorded vote when called without arguments. Careers with more dislikes
than likes are skipped by 'careers --hide-disliked'.

Examples:
  pathfinder careers feedback 后端工程师 like
  pathfinder careers feedback 前端工程师 dislike
  pathfinder careers feedback`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected <career> <like|dislike> or no arguments, got %d argument(s)", len(args))
		}
		return nil
	},
	RunE: runCareersFeedback,
}

var (
	careersInterests    string
	careersLocation     string
	careersStrategic    bool
	careersHideDisliked bool
)

func init() {
	rootCmd.AddCommand(careersCmd)
	careersCmd.AddCommand(careersFeedbackCmd)

	careersCmd.Flags().StringVarP(&careersInterests, "interests", "i", "", "Comma-separated interests")
	careersCmd.Flags().StringVarP(&careersLocation, "location", "l", "", "Preferred city (default from config, 全国 for anywhere)")
	careersCmd.Flags().BoolVar(&careersStrategic, "strategic", false, "Prioritize strategic national fields")
	careersCmd.Flags().BoolVar(&careersHideDisliked, "hide-disliked", false, "Skip careers with more dislikes than likes")
}

func runCareers(cmd *cobra.Command, args []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ranked, err := a.planner.MatchCareers(cmd.Context(), planner.CareerRequest{
		Interests:           interestsFrom(args, careersInterests),
		Location:            careersLocation,
		PrioritizeStrategic: careersStrategic,
		HideDisliked:        careersHideDisliked,
	})
	if err != nil {
		return err
	}

	return printer().Print(ranked)
}

func runCareersFeedback(cmd *cobra.Command, args []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		list, err := a.planner.CareerFeedback(cmd.Context())
		if err != nil {
			return err
		}
		return printer().Print(list)
	}

	f, err := a.planner.RecordCareerFeedback(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return printer().Print(f)
}
