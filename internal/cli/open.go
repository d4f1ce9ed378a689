package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/guard"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Run the navigation guard for a portal page",
		Long: `Run the portal's navigation guard for a page path with the saved session.

The guard asks the backend for the session status on every protected page.
The result is either "allowed" or a redirect to the login page carrying
the original path, exactly as the web portal would answer.`,
		Example: `  portal open /games
  portal open "/hangman?nuevo=1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := guard.New(guard.DefaultTable(), client)
			d := g.Navigate(cmd.Context(), args[0], cfg.Session())

			out.Print(newNavigationResult(args[0], d))
			return nil
		},
	}
}
