package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Write commands fail loud: API errors surface and exit non-zero.

var (
	logDuration int
	logNotes    string
)

var logCmd = &cobra.Command{
	Use:   "log <workout-id>",
	Short: "Log a completed workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, state, err := authedClient()
		if err != nil {
			return err
		}
		entry, err := c.LogWorkout(cmd.Context(), state.User.ID, args[0], logDuration, logNotes)
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}
		fmt.Printf("Logged workout %s: %d minutes.\n", entry.WorkoutID, entry.Duration)
		return nil
	},
}

var startCmd = &cobra.Command{
	Use:   "start <workout-id>",
	Short: "Start a workout session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, state, err := authedClient()
		if err != nil {
			return err
		}
		session, err := c.StartSession(cmd.Context(), state.User.ID, args[0])
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		fmt.Printf("Session %s started for workout %s.\n", session.ID, session.WorkoutID)
		return nil
	},
}

var doneWorkoutID string

var doneCmd = &cobra.Command{
	Use:   "done <exercise-id>...",
	Short: "Mark exercises complete in the active session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, state, err := authedClient()
		if err != nil {
			return err
		}

		session, err := c.ActiveSession(cmd.Context(), state.User.ID, doneWorkoutID)
		if err != nil {
			return fmt.Errorf("failed to load active session: %w", err)
		}
		if session == nil {
			return fmt.Errorf("no active session for workout %s; run \"forma start %s\" first", doneWorkoutID, doneWorkoutID)
		}

		// The server replaces the set wholesale, so merge with what is
		// already complete before sending.
		completed := append([]string{}, session.CompletedExercises...)
		seen := make(map[string]bool, len(completed))
		for _, id := range completed {
			seen[id] = true
		}
		for _, id := range args {
			if !seen[id] {
				completed = append(completed, id)
				seen[id] = true
			}
		}

		updated, err := c.UpdateSession(cmd.Context(), state.User.ID, session.ID, completed)
		if err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		fmt.Printf("Session %s: %d exercises complete.\n", updated.ID, len(updated.CompletedExercises))
		return nil
	},
}

func init() {
	logCmd.Flags().IntVar(&logDuration, "minutes", 0, "actual duration in minutes")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "optional notes")
	_ = logCmd.MarkFlagRequired("minutes")

	doneCmd.Flags().StringVar(&doneWorkoutID, "workout", "", "workout id of the active session")
	_ = doneCmd.MarkFlagRequired("workout")
}
