package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/megahubnet/portal/internal/api"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portal HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: parseLogLevel(cfg.LogLevel),
			}))
			slog.SetDefault(logger)

			app, err := openApp(logger)
			if err != nil {
				return err
			}

			go app.Hub.Run()
			defer app.Hub.Close()

			router := api.NewRouter(api.RouterConfig{
				Logger:       logger,
				Engine:       app.Engine,
				Catalog:      app.Catalog,
				ArenaService: app.ArenaService,
				Runner:       app.Runner,
				GameDeps:     app.GameDeps(),
				Hub:          app.Hub,
			})

			serverConfig := api.DefaultServerConfig()
			serverConfig.Host = cfg.Host
			serverConfig.Port = cfg.Port
			server := api.NewServer(router, serverConfig, logger)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				logger.Info("shutdown signal received")
				cancel()
			}()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				app.Runner.Stop()
				return server.Shutdown(context.Background())
			}
		},
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
