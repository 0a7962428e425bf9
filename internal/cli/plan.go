package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/pathfinder/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage saved learning plans",
}

var planSaveCmd = &cobra.Command{
	Use:   "save <title> [interest...]",
	Short: "Rank resources for your interests and save them as a plan",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlanSave,
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved plans",
	RunE:  runPlanList,
}

var planShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved plan (unique id prefixes work)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanShow,
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanDelete,
}

var (
	planInterests string
	planLocation  string
	planRepos     bool
	planLimit     int
)

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planSaveCmd, planListCmd, planShowCmd, planDeleteCmd)

	planSaveCmd.Flags().StringVarP(&planInterests, "interests", "i", "", "Comma-separated interests")
	planSaveCmd.Flags().StringVarP(&planLocation, "location", "l", "", "Location to record with the plan")
	planSaveCmd.Flags().BoolVar(&planRepos, "repos", false, "Include GitHub repositories")
	planListCmd.Flags().IntVar(&planLimit, "limit", 0, "Maximum number of plans")
}

func runPlanSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	title := args[0]
	interests := interestsFrom(args[1:], planInterests)
	if len(interests) == 0 {
		return fmt.Errorf("at least one interest is required")
	}

	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.planner.Recommend(ctx, planner.RecommendRequest{Interests: interests, IncludeRepos: planRepos})
	if err != nil {
		return err
	}

	plan, err := a.planner.SavePlan(ctx, title, planLocation, res.Interests, res.Items)
	if err != nil {
		return err
	}
	return printer().Print(plan)
}

func runPlanList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	plans, err := a.planner.Plans(cmd.Context(), planLimit)
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}
	return printer().Print(plans)
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	plan, err := a.planner.Plan(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printer().Print(plan)
}

func runPlanDelete(cmd *cobra.Command, args []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.planner.DeletePlan(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted plan %s\n", args[0])
	return nil
}
