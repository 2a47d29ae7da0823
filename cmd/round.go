package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Start, restart, complete, or inspect round sessions",
}

var roundStartCmd = &cobra.Command{
	Use:   "start <simulation-id> <round-index>",
	Short: "Start a round (resumes if a session already exists)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRound(cmd, args, func(eng *engine, userID, simID string, idx int) (any, error) {
			return eng.manager.StartRound(cmd.Context(), userID, simID, idx)
		})
	},
}

var roundRestartCmd = &cobra.Command{
	Use:   "restart <simulation-id> <round-index>",
	Short: "Discard any existing session and regenerate the round",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRound(cmd, args, func(eng *engine, userID, simID string, idx int) (any, error) {
			return eng.manager.RestartRound(cmd.Context(), userID, simID, idx)
		})
	},
}

var roundCompleteCmd = &cobra.Command{
	Use:   "complete <simulation-id> <round-index>",
	Short: "Mark a round completed with a score and feedback",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetFloat64("score")
		feedback, _ := cmd.Flags().GetString("feedback")
		return runRound(cmd, args, func(eng *engine, userID, simID string, idx int) (any, error) {
			if err := eng.manager.CompleteRound(cmd.Context(), userID, simID, idx, score, feedback); err != nil {
				return nil, err
			}
			return map[string]string{"status": "completed"}, nil
		})
	},
}

var roundShowCmd = &cobra.Command{
	Use:   "show <simulation-id> <round-index>",
	Short: "Print an existing round session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRound(cmd, args, func(eng *engine, userID, simID string, idx int) (any, error) {
			return eng.manager.GetRoundSession(cmd.Context(), userID, simID, idx)
		})
	},
}

func runRound(cmd *cobra.Command, args []string, fn func(eng *engine, userID, simID string, idx int) (any, error)) error {
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid round index %q: %w", args[1], err)
	}
	userID, _ := cmd.Flags().GetString("user")

	eng, err := buildEngine(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer eng.Close()

	result, err := fn(eng, userID, args[0], idx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func init() {
	roundCmd.PersistentFlags().StringP("user", "u", "local", "User id to act as")
	roundCompleteCmd.Flags().Float64("score", 0, "Total score for the round")
	roundCompleteCmd.Flags().String("feedback", "", "Feedback text for the round")

	roundCmd.AddCommand(roundStartCmd)
	roundCmd.AddCommand(roundRestartCmd)
	roundCmd.AddCommand(roundCompleteCmd)
	roundCmd.AddCommand(roundShowCmd)
}
