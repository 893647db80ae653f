package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/newsfront/internal/livereload"
	"github.com/ziadkadry99/newsfront/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site, rendering page shells per request",
	Long: `Starts an HTTP server that renders every page shell on request, serves
the remaining files, exposes the news index under /api/news and, with
--watch, reloads connected browsers when the site changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("watch", false, "reload browsers when the site changes")
	serveCmd.Flags().Bool("allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if cmd.Flags().Changed("watch") {
		cfg.Server.Watch, _ = cmd.Flags().GetBool("watch")
	}
	if cmd.Flags().Changed("allow-all") {
		cfg.Server.AllowAll, _ = cmd.Flags().GetBool("allow-all")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *livereload.Hub
	if cfg.Server.Watch {
		if cfg.Source.BaseURL != "" {
			logger.Warn("live reload watches the local site directory only", "base_url", cfg.Source.BaseURL)
		}
		hub = livereload.NewHub(logger)
		watcher := livereload.NewWatcher(cfg.SiteDir, []string{cfg.OutputDir}, logger)
		go func() {
			if err := watcher.Run(ctx, func(string) { hub.Reload() }); err != nil {
				logger.Error("live reload stopped", "error", err)
			}
		}()
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAll,
		Include:  cfg.Include,
		Exclude:  cfg.Exclude,
	}, newPipeline(cfg, newSource(cfg)), hub, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
