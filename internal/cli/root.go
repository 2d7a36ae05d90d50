package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/roomapi"
)

var (
	cfg    *Config
	client *roomapi.Client
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var (
		configFile string
		serverURL  string
		timeout    time.Duration
		output     string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "ttt",
		Short: "Client for the tic-tac-toe room service",
		Long: `ttt talks to a tic-tac-toe room service over HTTP.

Rooms are created and joined by name; the server decides whose turn it is
and when a game is won. Use "ttt play" for an interactive session.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := LoadConfig(configFile)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("server") {
				loaded.ServerURL = serverURL
			}
			if flags.Changed("timeout") {
				loaded.Timeout = timeout
			}
			if flags.Changed("output") {
				loaded.Output = output
			}
			if flags.Changed("verbose") {
				loaded.Verbose = verbose
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded

			logger = newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			client = roomapi.New(roomapi.Config{
				BaseURL: cfg.ServerURL,
				Timeout: cfg.Timeout,
			}, logger)
			return nil
		},
		SilenceUsage: true,
	}

	defaults := roomapi.DefaultConfig()

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "YAML config file (env: "+ConfigFileEnv+")")
	pf.StringVar(&serverURL, "server", defaults.BaseURL, "Server URL (env: TTT_SERVER)")
	pf.DurationVar(&timeout, "timeout", defaults.Timeout, "Per-request timeout, 0 for none (env: TTT_TIMEOUT)")
	pf.StringVarP(&output, "output", "o", OutputText, "Output format: text, json, html (env: TTT_OUTPUT)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr (env: TTT_VERBOSE)")

	// Add subcommands
	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
