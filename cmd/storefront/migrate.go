package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync()

			version, err := database.RunMigrations(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			log.Info("migrations applied", zap.Uint("version", version))
			return nil
		},
	}
}
