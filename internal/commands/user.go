package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harmonic-pos/salonledger/internal/model"
)

func newUserCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage operator logins",
	}
	cmd.AddCommand(newUserAddCommand(c), newUserVerifyCommand(c))
	return cmd
}

func newUserAddCommand(c *cli) *cobra.Command {
	var password, role string

	cmd := &cobra.Command{
		Use:   "add USERNAME",
		Short: "Add a user, or change an existing user's password and role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				created, err := s.ledger.UpsertUser(cmd.Context(), args[0], password, role)
				if err != nil && !created {
					return err
				}
				verb := "Updated"
				if created {
					verb = "Added"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s user %s\n", verb, args[0])
				return err
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")
	cmd.Flags().StringVar(&role, "role", model.RoleStaff, "admin or staff")
	return cmd
}

func newUserVerifyCommand(c *cli) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "verify USERNAME",
		Short: "Check a username and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session) error {
				u, err := s.ledger.Authenticate(args[0], password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%s)\n", u.Username, u.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
