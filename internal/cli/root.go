package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/portal"
)

var (
	cfg    *Config
	client *portal.Client
	out    *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "CLI tool for the game portal backend",
		Long: `portal talks to the game portal's backend API from the terminal.

It signs in and out, inspects the session, manages the game catalog, and
dry-runs the portal's navigation guard for a page path.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			out = NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

			var err error
			client, err = NewClient(cfg, cmd.ErrOrStderr())
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Backend URL (env: PORTAL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: PORTAL_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: PORTAL_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log backend requests to stderr")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newOpenCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if out != nil {
			out.PrintError(err)
		} else {
			cmd.PrintErrln("Error:", err)
		}
		os.Exit(1)
	}
}
