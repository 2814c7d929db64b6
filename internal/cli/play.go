package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively",
		Long: `Read commands from standard input and send each one to the server, while
printing queued messages as they arrive.

Type "help" to list the commands. Press Ctrl+D or Ctrl+C to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.InOrStdin())
		},
	}
}

func play(in io.Reader) error {
	if _, err := cfg.RequirePlayer(); err != nil {
		return err
	}
	out := NewOutput(cfg.Output)

	// Set up cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.Output != "json" {
		fmt.Printf("Playing as player %d. Type \"help\" for commands.\n", cfg.PlayerID)
	}

	polled := make(chan struct{})
	go func() {
		defer close(polled)
		pollMessages(ctx, cancel, out, cfg.PollInterval)
	}()

	lines := readLines(in)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				// Input closed; show whatever the last command produced
				cancel()
				<-polled
				if err := drainMessages(context.Background(), out); err != nil {
					out.PrintError(err)
				}
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			result, err := sendCommand(ctx, line)
			if err != nil {
				out.PrintError(err)
				continue
			}
			out.Print(result)

		case <-ctx.Done():
			<-polled
			if cfg.Output != "json" {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
	}
}

// pollMessages drains the player's queue every interval until ctx is done.
// The session ends if the server no longer knows the player.
func pollMessages(ctx context.Context, cancel context.CancelFunc, out *Output, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := drainMessages(ctx, out)
			if err == nil {
				continue
			}
			out.PrintError(err)
			if IsAPIError(err, codePlayerNotFound) {
				cancel()
				return
			}
		}
	}
}

// drainMessages prints queued messages until the queue is empty
func drainMessages(ctx context.Context, out *Output) error {
	for {
		result, err := pollMessage(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
		if result.Message == "" {
			return nil
		}
		out.Print(result)
	}
}

// readLines streams lines from in, closing the channel at EOF
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}
