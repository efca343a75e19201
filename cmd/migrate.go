package main

import (
	"fmt"

	"bloglist/internal/config"
	"bloglist/internal/logger"
	"bloglist/internal/repository/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.Get(cfg.Log.Level, cfg.Log.Format)

		// InitDB migrates on open.
		conn, err := db.InitDB(cfg.DSN())
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Infow("migrations applied", "dsn", cfg.DSN())
		return conn.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
