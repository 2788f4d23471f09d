package main

import (
	"fmt"
	"time"

	"github.com/jekabolt/grbpwr-waitlist/config"
	"github.com/jekabolt/grbpwr-waitlist/internal/apisrv/auth"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		sub  string
		role string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("cannot load a config %v", err.Error())
			}
			authS, err := auth.New(&cfg.Auth)
			if err != nil {
				return err
			}
			token, err := authS.IssueToken(sub, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "principal id (token subject)")
	cmd.Flags().StringVar(&role, "role", "admin", "principal role")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to auth.jwt_ttl")
	cmd.MarkFlagRequired("sub")
	return cmd
}
