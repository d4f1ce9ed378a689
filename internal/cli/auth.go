package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/portal"
)

func newLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.Login(cmd.Context(), user, pass)
			if portal.IsUnauthorized(err) {
				return errors.New(portal.Message(err))
			}
			if err != nil {
				return describeError(err)
			}

			if err := cfg.SaveToken(result.Session.Token()); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out.PrintMessage(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	var user, email, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Create a new account. Registration does not log in; run 'portal login' afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.Register(cmd.Context(), user, email, pass)
			if err != nil {
				return describeError(err)
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}

			result, err := client.Logout(cmd.Context(), sess)
			// The token is useless either way once the backend has rejected it
			if err == nil || portal.IsUnauthorized(err) {
				if clearErr := cfg.ClearToken(); clearErr != nil {
					return fmt.Errorf("failed to remove token file: %w", clearErr)
				}
			}
			if err != nil {
				return describeError(err)
			}

			out.PrintMessage(result.Message)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the saved session is valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := client.CheckAuth(cmd.Context(), cfg.Session())
			switch {
			case portal.IsUnauthorized(err):
				out.Print(AuthStatusResult{StatusCode: portal.StatusCode(err)})
			case err != nil:
				return describeError(err)
			default:
				out.Print(newAuthStatusResult(status))
			}
			return nil
		},
	}
}
