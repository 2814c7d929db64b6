package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match [id]",
		Short: "Show a match, or the current player's active match",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string

			if len(args) == 1 {
				matchID, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid match ID %q", args[0])
				}
				path = fmt.Sprintf("/api/v1/matches/%d", matchID)
			} else {
				id, err := cfg.RequirePlayer()
				if err != nil {
					return err
				}
				path = fmt.Sprintf("/api/v1/players/%d/match", id)
			}

			var result Match

			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
