package command

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/session"
)

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(field + " is required")
		}

		return nil
	}
}

// prompt asks for whichever credentials were not passed as flags.
func prompt(fields ...*huh.Input) error {
	group := make([]huh.Field, 0, len(fields))
	for _, f := range fields {
		if f != nil {
			group = append(group, f)
		}
	}

	if len(group) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(group...)).Run()
}

func inputIfEmpty(value *string, title string, secret bool) *huh.Input {
	if *value != "" {
		return nil
	}

	in := huh.NewInput().Title(title).Value(value).Validate(required(title))
	if secret {
		in = in.EchoMode(huh.EchoModePassword)
	}

	return in
}

func newLoginCmd(a *app) *cobra.Command {
	var creds backend.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := prompt(
				inputIfEmpty(&creds.Username, "Username", false),
				inputIfEmpty(&creds.Password, "Password", true),
			); err != nil {
				return err
			}

			token, err := a.anonymousClient().Login(cmd.Context(), creds)
			if err != nil {
				return err
			}

			if err := session.Save(a.cfg.SessionPath, session.Session{Token: token.AccessToken, User: token.User}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", token.User.Username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func newSignupCmd(a *app) *cobra.Command {
	var req backend.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := prompt(
				inputIfEmpty(&req.Username, "Username", false),
				inputIfEmpty(&req.Email, "Email", false),
				inputIfEmpty(&req.Password, "Password", true),
			); err != nil {
				return err
			}

			user, err := a.anonymousClient().Signup(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created account %s, now run `spend login`\n", user.Username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "account name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "display name")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := session.Clear(a.cfg.SessionPath); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "logged out")

			return nil
		},
	}
}
