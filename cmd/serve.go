package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/uditisharmaaa/portfolio/internal/content"
	"github.com/uditisharmaaa/portfolio/internal/metrics"
	"github.com/uditisharmaaa/portfolio/internal/search"
	"github.com/uditisharmaaa/portfolio/internal/web"
)

const reloadDebounce = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site (default command)",
	Long: `serve loads the content, builds the search index and starts the HTTP server.
With watch enabled, changes under content_dir are picked up without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	gin.SetMode(cfg.Mode)

	lib, err := content.NewLibrary(contentFS(cfg.ContentDir))
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	metrics.RecordSnapshot(lib.Store())

	idx, err := search.Open()
	if err != nil {
		return err
	}
	defer idx.Close()
	if err := idx.Rebuild(ctx, lib.Store().Posts()); err != nil {
		return fmt.Errorf("indexing posts: %w", err)
	}
	lib.OnReload(func(s *content.Store) error {
		metrics.RecordSnapshot(s)
		if err := idx.Rebuild(context.Background(), s.Posts()); err != nil {
			return fmt.Errorf("rebuilding search index: %w", err)
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	engine := web.New(web.Options{
		BasePath:    cfg.BasePath,
		ImagesDir:   cfg.ImagesDir,
		MetricsPath: metricsPath,
		Logger:      logger,
	}, lib, idx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Watch {
		g.Go(func() error {
			watchContent(gctx, lib)
			return nil
		})
	}
	g.Go(func() error {
		logger.Info("listening",
			slog.String("addr", srv.Addr),
			slog.String("base_path", cfg.BasePath),
			slog.String("content_dir", cfg.ContentDir),
			slog.Int("posts", len(lib.Store().Posts())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func watchContent(ctx context.Context, lib *content.Library) {
	logger.Info("watching content", slog.String("dir", cfg.ContentDir))
	err := content.Watch(ctx, cfg.ContentDir, reloadDebounce, logger, func() {
		err := lib.Reload()
		metrics.RecordReload(err)
		switch {
		case errors.Is(err, content.ErrReloadListener):
			logger.Error("content reloaded, search index is stale until the next reload",
				slog.Int("posts", len(lib.Store().Posts())), slog.Any("error", err))
		case err != nil:
			logger.Error("content reload failed, keeping previous content", slog.Any("error", err))
		default:
			logger.Info("content reloaded", slog.Int("posts", len(lib.Store().Posts())))
		}
	})
	if err != nil {
		logger.Error("content watcher stopped", slog.Any("error", err))
	}
}
