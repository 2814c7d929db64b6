package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCommandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "command <text>",
		Short: "Send a command or a move to the server",
		Long: `Send one line of input to the server, exactly as the interactive client would.

Commands: help, start, human, cpu, exit, hard, easy.
Any number is taken as a move: the count of marbles to remove.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := sendCommand(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func sendCommand(ctx context.Context, text string) (CommandResult, error) {
	var result CommandResult

	id, err := cfg.RequirePlayer()
	if err != nil {
		return result, err
	}

	req := map[string]string{"command": text}
	err = client.Post(ctx, fmt.Sprintf("/api/v1/players/%d/commands", id), req, &result)
	return result, err
}

func newPollCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Fetch the oldest queued message",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if !all {
				result, err := pollMessage(cmd.Context())
				if err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			results := []MessageResult{}
			for {
				result, err := pollMessage(cmd.Context())
				if err != nil {
					return err
				}
				if result.Message == "" {
					break
				}
				results = append(results, result)
			}
			out.Print(results)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Drain every queued message")

	return cmd
}

func pollMessage(ctx context.Context) (MessageResult, error) {
	var result MessageResult

	id, err := cfg.RequirePlayer()
	if err != nil {
		return result, err
	}

	err = client.Post(ctx, fmt.Sprintf("/api/v1/players/%d/messages/next", id), nil, &result)
	return result, err
}
