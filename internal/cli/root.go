package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "nimgame",
		Short: "CLI tool for the Nim match server",
		Long: `nimgame is a CLI tool for interacting with the Nim match server JSON API.

Register once to get a player ID, then send commands ("help", "start", "cpu",
a number of marbles to take...) and poll for the messages the server queues
for you. "nimgame play" does both interactively.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load player ID from file if not provided via flag/env
			if err := cfg.LoadPlayer(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Verbose)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: NIMGAME_SERVER)")
	rootCmd.PersistentFlags().IntVar(&cfg.PlayerID, "player", cfg.PlayerID, "Player ID (env: NIMGAME_PLAYER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerFile, "player-file", cfg.PlayerFile, "Player ID file path (env: NIMGAME_PLAYER_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	rootCmd.PersistentFlags().DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Message polling interval for play")

	// Add subcommands
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newCommandCmd())
	rootCmd.AddCommand(newPollCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
