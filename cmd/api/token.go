package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yash-2200030856/Sanchari-escapes/internal/config"
	"github.com/yash-2200030856/Sanchari-escapes/internal/util"
)

// newMintTokenCommand signs a short-lived access token with SUPABASE_JWT_SECRET.
// Useful for exercising the admin API locally.
func newMintTokenCommand(envFile *string) *cobra.Command {
	var (
		userID     string
		email      string
		superAdmin bool
		ttl        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "mint-token",
		Short: "Sign an access token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("SUPABASE_JWT_SECRET is required to mint tokens")
			}
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("--user-id: %w", err)
			}

			token, expiresAt, err := util.NewJWTManager(cfg.JWTSecret, ttl).Generate(id, email, superAdmin)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "profile id to put in the sub claim")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().BoolVar(&superAdmin, "super-admin", false, "set the is_super_admin claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
