package cmd

import (
	"fmt"
	"net/http"

	"github.com/mhout/cadence/internal/config"
	"github.com/mhout/cadence/internal/logger"
	"github.com/mhout/cadence/internal/server"
	"github.com/mhout/cadence/internal/storage"
	"github.com/mhout/cadence/internal/storage/bolt"
	"github.com/mhout/cadence/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return startServer(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.Open(cfg.DBPath)
	case "bolt":
		return bolt.Open(cfg.DBPath)
	}
	return nil, fmt.Errorf("unknown db_driver %q: must be sqlite or bolt", cfg.DBDriver)
}

func startServer(cfg *config.Config) error {
	if cfg.LogFormat == "json" {
		logger.InitJSON(cfg.SlogLevel())
	} else {
		logger.Init(cfg.SlogLevel())
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	s := server.New(store, cfg)
	logger.Info("Starting server", "addr", cfg.ListenAddr, "driver", cfg.DBDriver, "auth", cfg.AuthEnabled)
	return http.ListenAndServe(cfg.ListenAddr, s.Router())
}
