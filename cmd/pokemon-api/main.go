// Package main boots the Pokemon API HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pokemon-api/internal/config"
	httpapi "pokemon-api/internal/http"
	"pokemon-api/internal/obs"
	"pokemon-api/internal/upstream"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "pokemon-api",
	Short:         "HTTP facade over the PokeAPI pokemon resource",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := setGinMode(cfg.GinMode); err != nil {
			return err
		}
		log, err := obs.NewLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, log)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
}

// setGinMode applies the process-wide gin mode once at startup.
func setGinMode(mode string) error {
	switch mode {
	case "":
		return nil
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
		return nil
	default:
		return fmt.Errorf("config: unknown gin mode %q", mode)
	}
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	log.Info("service_starting", zap.String("upstream", cfg.UpstreamBaseURL))

	client := upstream.New(
		upstream.WithBaseURL(cfg.UpstreamBaseURL),
		upstream.WithTimeout(cfg.UpstreamTimeout),
		upstream.WithMaxBodyBytes(cfg.UpstreamMaxBodyBytes),
		upstream.WithLogger(log),
	)
	defer client.Close()

	app := httpapi.NewApp(cfg, client, log)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http_listen", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown_signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http_shutdown_error", zap.Error(err))
			return err
		}
		return nil
	})

	err := g.Wait()
	log.Info("service_stopped")
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
