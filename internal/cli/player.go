package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register a new player and remember its ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RegisterResult

			if err := client.Post(cmd.Context(), "/api/v1/players", nil, &result); err != nil {
				return fmt.Errorf("server refused registration: %w", err)
			}
			if result.PlayerID < 1 {
				return fmt.Errorf("server refused registration")
			}

			// Save player ID
			if err := cfg.SavePlayer(result.PlayerID); err != nil {
				return fmt.Errorf("failed to save player ID: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Show the current player",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.RequirePlayer()
			if err != nil {
				return err
			}

			var result Player

			if err := client.Get(cmd.Context(), fmt.Sprintf("/api/v1/players/%d", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(newPlayerSetCmd())

	return cmd
}

func newPlayerSetCmd() *cobra.Command {
	var mode, difficulty string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences for the next match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" && difficulty == "" {
				return fmt.Errorf("--mode or --difficulty is required")
			}

			id, err := cfg.RequirePlayer()
			if err != nil {
				return err
			}

			req := map[string]string{}
			if mode != "" {
				req["mode"] = mode
			}
			if difficulty != "" {
				req["difficulty"] = difficulty
			}
			var result Player

			if err := client.Patch(cmd.Context(), fmt.Sprintf("/api/v1/players/%d", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Opponent mode: human, cpu")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, hard")

	return cmd
}
