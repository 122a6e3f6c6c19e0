// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/templates/lessons-backend/internal/config"
	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/policy"
	"github.com/carterperez-dev/templates/lessons-backend/internal/user"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "lessonsctl",
		Short:         "Operator tooling for the lessons backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(migrateCmd(&configPath))
	root.AddCommand(setRoleCmd(&configPath))
	root.AddCommand(grantPremiumCmd(&configPath))

	return root
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd.Context(), *configPath, func(db *core.Database) error {
				if err := db.Migrate(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
				return nil
			})
		},
	}
}

func setRoleCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <email> <user|premium|admin>",
		Short: "Change the stored role of a principal",
		Long: `Change the stored role of a principal that has signed in at least once.

Examples:
  lessonsctl set-role ops@example.com admin
  lessonsctl set-role writer@example.com premium`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, role := args[0], args[1]
			if _, err := policy.ParseRole(role); err != nil {
				return fmt.Errorf("invalid role %q: %w", role, err)
			}

			return withDatabase(cmd.Context(), *configPath, func(db *core.Database) error {
				svc := user.NewService(user.NewRepository(db.DB))

				u, err := svc.SetRoleByEmail(cmd.Context(), email, role)
				if err != nil {
					return fmt.Errorf("set role for %s: %w", email, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.Email, u.Role)
				return nil
			})
		},
	}
}

func grantPremiumCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "grant-premium <email>",
		Short: "Grant the premium entitlement without a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			return withDatabase(cmd.Context(), *configPath, func(db *core.Database) error {
				svc := user.NewService(user.NewRepository(db.DB))

				if err := svc.GrantPremium(cmd.Context(), email); err != nil {
					return fmt.Errorf("grant premium to %s: %w", email, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s is now premium\n", email)
				return nil
			})
		},
	}
}

func withDatabase(
	ctx context.Context,
	configPath string,
	fn func(db *core.Database) error,
) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	return fn(db)
}
