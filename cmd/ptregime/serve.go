package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/logging"
	"github.com/rgehrsitz/ptregime/internal/metrics"
	"github.com/rgehrsitz/ptregime/internal/server"
	"github.com/rgehrsitz/ptregime/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Long: "Serve the calculators over HTTP. Settings come from ptregime.yaml (or --config), " +
			"a .env file and PTREGIME_* environment variables.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				settings.Server.Addr = addr
			}

			logger, err := logging.New(settings.Log.Level, settings.Log.Format)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			rates, err := loadRegistry(settings.Rates)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, closeStore, err := openStore(ctx, settings.Store, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			srv := server.New(server.Options{
				Rates:        rates,
				DefaultYear:  settings.Rates.FiscalYear,
				Store:        st,
				Metrics:      metrics.New("", nil),
				Logger:       logger,
				ReadTimeout:  settings.Server.ReadTimeout,
				WriteTimeout: settings.Server.WriteTimeout,
			})

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe(settings.Server.Addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Settings file (default: ptregime.yaml in ./configs or .)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	return cmd
}

func loadRegistry(s config.RateSettings) (*config.RateRegistry, error) {
	reg := config.NewRateRegistry()
	parser := config.NewRateTableParser()
	if s.Dir != "" {
		if err := reg.LoadDir(s.Dir, parser); err != nil {
			return nil, fmt.Errorf("load rate tables: %w", err)
		}
	}
	if s.File != "" {
		rt, err := parser.LoadFromFile(s.File)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(rt); err != nil {
			return nil, err
		}
	}
	if _, err := reg.Get(s.FiscalYear); err != nil {
		return nil, fmt.Errorf("rates.fiscal_year: %w", err)
	}
	return reg, nil
}

func openStore(ctx context.Context, s config.StoreSettings, logger *zap.Logger) (store.Store, func(), error) {
	switch s.Backend {
	case "redis":
		client := store.NewRedisClient(store.RedisOptions{
			Addr:     s.RedisAddr,
			Password: s.Password,
			DB:       s.RedisDB,
		})
		rs := store.NewRedisStore(client, s.KeyPrefix, s.TTL)
		if err := rs.Ping(ctx); err != nil {
			rs.Close() //nolint:errcheck
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", s.RedisAddr, err)
		}
		logger.Info("using redis store", zap.String("addr", s.RedisAddr), zap.Duration("ttl", s.TTL))
		return rs, func() {
			if err := rs.Close(); err != nil {
				logger.Warn("closing redis", zap.Error(err))
			}
		}, nil
	default:
		logger.Info("using in-memory store")
		return store.NewMemoryStore(), func() {}, nil
	}
}
