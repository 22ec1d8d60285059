package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Read commands fail soft: on API errors they print an empty state
// instead of exiting non-zero, matching the dashboard's behavior.

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your workout stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, state, err := authedClient()
		if err != nil {
			return err
		}
		st, err := c.Stats(cmd.Context(), state.User.ID)
		if err != nil {
			fmt.Println("No stats available right now.")
			return nil
		}
		fmt.Printf("Workouts:       %d\n", st.TotalWorkouts)
		fmt.Printf("Minutes:        %d\n", st.TotalMinutes)
		fmt.Printf("Current streak: %d\n", st.CurrentStreak)
		fmt.Printf("Longest streak: %d\n", st.LongestStreak)
		fmt.Printf("This week:      %d/%d\n", st.WeeklyProgress, st.WeeklyGoal)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show your active workout plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, state, err := authedClient()
		if err != nil {
			return err
		}
		plan, err := c.ActivePlan(cmd.Context(), state.User.ID)
		if err != nil || plan == nil {
			fmt.Println("No active plan.")
			return nil
		}
		fmt.Printf("%s — %s\n", plan.Title, plan.Description)
		for _, w := range plan.Workouts {
			fmt.Printf("  [%s] %s (%d min, %s) — %d%%\n", w.ID, w.Title, w.Duration, w.Difficulty, w.ProgressPercentage)
		}
		return nil
	},
}

var workoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "Show recommended workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, state, err := authedClient()
		if err != nil {
			return err
		}
		workouts, err := c.RecommendedWorkouts(cmd.Context(), state.User.ID)
		if err != nil || len(workouts) == 0 {
			fmt.Println("No recommendations right now.")
			return nil
		}
		for _, w := range workouts {
			fmt.Printf("[%s] %s (%d min, %s)\n", w.ID, w.Title, w.Duration, w.Difficulty)
			for _, e := range w.Exercises {
				fmt.Printf("    - %s\n", e.Name)
			}
		}
		return nil
	},
}

var progressWorkoutID string

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show your workout log",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, state, err := authedClient()
		if err != nil {
			return err
		}
		entries, err := c.Progress(cmd.Context(), state.User.ID, progressWorkoutID)
		if err != nil || len(entries) == 0 {
			fmt.Println("No workouts logged yet.")
			return nil
		}
		for _, p := range entries {
			line := fmt.Sprintf("%s  workout %s  %d min", p.CompletedAt.Format("2006-01-02 15:04"), p.WorkoutID, p.Duration)
			if p.Notes != "" {
				line += "  — " + p.Notes
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	progressCmd.Flags().StringVar(&progressWorkoutID, "workout", "", "filter by workout id")
}
