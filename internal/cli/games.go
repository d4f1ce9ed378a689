package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/portal"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Game catalog commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesCreateCmd())
	cmd.AddCommand(newGamesUpdateCmd())
	cmd.AddCommand(newGamesDeleteCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}

			games, err := client.ListGames(cmd.Context(), sess)
			if err != nil {
				return describeError(err)
			}

			out.Print(games)
			return nil
		},
	}
}

// gameFlags binds the catalog fields to a command's flags
func gameFlags(cmd *cobra.Command, g *portal.Game) {
	cmd.Flags().StringVar(&g.Name, "name", "", "Name (required)")
	cmd.Flags().StringVar(&g.Genre, "genre", "", "Genre (required)")
	cmd.Flags().StringVar(&g.Platform, "platform", "", "Platform (required)")
	cmd.Flags().IntVar(&g.Year, "year", 0, "Release year (required)")
	cmd.Flags().StringVar(&g.Description, "description", "", "Description")
	cmd.Flags().StringVar(&g.ImagePath, "image", "", "Image path")
	cmd.Flags().StringVar(&g.WikipediaURL, "wikipedia", "", "Wikipedia URL")
	for _, name := range []string{"name", "genre", "platform", "year"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func newGamesCreateCmd() *cobra.Command {
	var game portal.Game

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a game (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}

			result, err := client.CreateGame(cmd.Context(), sess, game)
			if err != nil {
				return describeError(err)
			}

			out.Print(result)
			return nil
		},
	}
	gameFlags(cmd, &game)

	return cmd
}

func newGamesUpdateCmd() *cobra.Command {
	var game portal.Game

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a game's fields (admin only)",
		Long: `Replace a game's fields (admin only).

Every mandatory field must be given; optional fields left out are cleared.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}
			sess, err := requireSession()
			if err != nil {
				return err
			}

			result, err := client.UpdateGame(cmd.Context(), sess, id, game)
			if err != nil {
				return describeError(err)
			}

			out.Print(result)
			return nil
		},
	}
	gameFlags(cmd, &game)

	return cmd
}

func newGamesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a game (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}
			sess, err := requireSession()
			if err != nil {
				return err
			}

			result, err := client.DeleteGame(cmd.Context(), sess, id)
			if err != nil {
				return describeError(err)
			}

			out.Print(result)
			return nil
		},
	}
}

func parseGameID(raw string) (portal.GameID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid game id %q", raw)
	}
	return portal.GameID(id), nil
}
