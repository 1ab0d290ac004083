// Command passd is the door-pass agent: it keeps the pass artifact
// fresh in the background and serves it over a local HTTP endpoint.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/huihutong/passd/internal/bootstrap"
	"github.com/huihutong/passd/internal/httpd"
	"github.com/huihutong/passd/internal/observability/statsd"
	"github.com/huihutong/passd/internal/poller"
	"github.com/huihutong/passd/internal/render"
	"github.com/huihutong/passd/internal/service"
	"github.com/huihutong/passd/internal/upstream"
)

func main() {
	logger := bootstrap.InitLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.IsDev {
		logger = bootstrap.InitDebugLogger()
	}

	logger.InfoContext(ctx, "starting passd",
		"upstream", cfg.Upstream.BaseURL,
		"storage", cfg.Storage.Backend,
		"http_enabled", cfg.HTTP.Enabled)

	settingsStore, closer, err := bootstrap.OpenStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close settings store failed", "error", cerr)
		}
	}()

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Observability.Metrics.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics failed", "error", cerr)
		}
	}()

	client, err := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("build upstream client: %w", err)
	}

	creds, err := service.NewCredentialService(service.CredentialServiceOptions{
		Exchanger: client,
		Store:     settingsStore,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("build credential service: %w", err)
	}

	profiles, err := service.NewProfileService(service.ProfileServiceOptions{
		API:         client,
		Credentials: creds,
		Store:       settingsStore,
		Timeout:     cfg.Upstream.ProfileTimeout,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("build profile service: %w", err)
	}

	controller, err := poller.NewController(poller.Options{
		Credentials: creds,
		Artifacts:   client,
		Store:       settingsStore,
		Renderer:    render.NewQRRenderer(),
		Profiles:    profiles,
		Logger:      logger,
		Metrics:     metrics,
		Config: poller.Config{
			RetryBackoff: cfg.Poller.RetryBackoff,
			BackoffCap:   cfg.Poller.BackoffCap,
		},
	})
	if err != nil {
		return fmt.Errorf("build polling controller: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return controller.Run(groupCtx)
	})

	if cfg.HTTP.Enabled {
		server, serverErr := httpd.NewServer(httpd.Options{
			Controller: controller,
			Logger:     logger,
		})
		if serverErr != nil {
			return fmt.Errorf("build status server: %w", serverErr)
		}

		httpServer := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		group.Go(func() error {
			logger.InfoContext(groupCtx, "status server listening", "addr", cfg.HTTP.Addr)
			if listenErr := httpServer.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
				return listenErr
			}
			return nil
		})
		group.Go(func() error {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	logger.InfoContext(ctx, "passd stopped")
	return nil
}
