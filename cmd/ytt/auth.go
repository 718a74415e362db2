package main

import (
	"fmt"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"

	"github.com/spf13/cobra"
)

func (c *cli) signupCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.api.SignUp(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			_, _ = successColor.Fprintf(c.app.out, "Account created, signed in as %s\n", user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.api.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			_, _ = successColor.Fprintf(c.app.out, "Signed in as %s\n", user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.api.GetCurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.app.out, "%s <%s>\n", user.Name, user.Email)
			_, _ = mutedColor.Fprintf(c.app.out, "id %s\n", user.ID)
			return nil
		},
	}
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := c.app.api.SignOut(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = successColor.Fprintln(c.app.out, msg)
			return nil
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	var name, photo string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the profile",
		Long:  "Without flags the profile is printed. --name and --photo update the given fields.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				user *model.User
				err  error
			)
			if cmd.Flags().Changed("name") || cmd.Flags().Changed("photo") {
				user, err = c.app.api.UpdateProfile(ctx, dto.ProfileUpdateRequest{Name: name, PhotoURL: photo})
			} else {
				user, err = c.app.api.GetProfile(ctx)
			}
			if err != nil {
				return err
			}
			_, _ = titleColor.Fprintln(c.app.out, user.Name)
			_, _ = fmt.Fprintf(c.app.out, "Email:  %s\n", user.Email)
			if user.PhotoURL != "" {
				_, _ = fmt.Fprintf(c.app.out, "Photo:  %s\n", user.PhotoURL)
			}
			if !user.CreatedAt.IsZero() {
				_, _ = fmt.Fprintf(c.app.out, "Joined: %s\n", user.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&photo, "photo", "", "new photo URL")
	return cmd
}
