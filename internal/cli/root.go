package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/megahubnet/portal/internal/config"
	"github.com/megahubnet/portal/internal/factory"
	redisstorage "github.com/megahubnet/portal/internal/storage/redis"
)

var (
	cfg    config.Config
	output string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "Megahub casual gaming portal",
		Long: `portal runs the Megahub gaming portal: a local profile with credits,
experience and cosmetics, a set of arcade mini-games, and a simulated
multiplayer arena.

Profile state persists across invocations in the configured storage
backend (sqlite by default).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			// Flags set explicitly win over the environment
			if !cmd.Flags().Changed("storage") {
				cfg.Storage = loaded.Storage
			}
			if !cmd.Flags().Changed("db") {
				cfg.SQLitePath = loaded.SQLitePath
			}
			if !cmd.Flags().Changed("redis-url") {
				cfg.RedisURL = loaded.RedisURL
			}
			cfg.Host = loaded.Host
			cfg.Port = loaded.Port
			cfg.LogLevel = loaded.LogLevel
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", "sqlite", "Storage backend: memory, sqlite, redis (env: PORTAL_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.SQLitePath, "db", "portal.db", "SQLite database path (env: PORTAL_SQLITE_PATH)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", "redis://localhost:6379", "Redis URL (env: PORTAL_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newShopCmd())
	rootCmd.AddCommand(newArenaCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp wires the application against the configured storage backend.
// Commands other than serve use a quiet logger so output stays readable.
func openApp(logger *slog.Logger) (*factory.App, error) {
	fcfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage,
		SQLitePath:  cfg.SQLitePath,
	}
	if cfg.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		fcfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(fcfg)
	if err != nil {
		return nil, fmt.Errorf("open portal: %w", err)
	}
	return app, nil
}
