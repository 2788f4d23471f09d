package main

import (
	"context"
	"fmt"

	"github.com/jekabolt/grbpwr-waitlist/config"
	"github.com/jekabolt/grbpwr-waitlist/internal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("cannot load a config %v", err.Error())
		}
		if cfg.Storage.Type != config.StorageMySQL {
			return fmt.Errorf("migrations need mysql storage, got %q", cfg.Storage.Type)
		}
		setupLogger(cfg)

		cfg.DB.Automigrate = true
		st, err := store.New(context.Background(), cfg.DB)
		if err != nil {
			return err
		}
		st.Close()
		return nil
	},
}
