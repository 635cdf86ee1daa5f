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

	"github.com/Alp4ka/catalogpager/catalog"
	"github.com/Alp4ka/catalogpager/catalog/httpapi"
	"github.com/Alp4ka/catalogpager/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	v := config.New()

	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog listings over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}

			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to configuration file")
	flags.String("addr", ":8080", "HTTP listen address")
	flags.String("db-driver", config.DriverPostgres, "database driver (postgres|mysql)")
	flags.String("db-dsn", "", "database DSN")
	flags.Bool("dev", false, "development logging")

	bindFlag(v, "http.addr", cmd, "addr")
	bindFlag(v, "db.driver", cmd, "db-driver")
	bindFlag(v, "db.dsn", cmd, "db-dsn")
	bindFlag(v, "log.development", cmd, "dev")

	return cmd
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func dialector(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: unsupported db.driver '%s'", config.ErrInvalidConfig, cfg.Driver)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	d, err := dialector(cfg.DB)
	if err != nil {
		return err
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := catalog.NewService(db, logger,
		catalog.WithMetrics(catalog.NewMetrics(registry)),
		catalog.WithMaxPerPage(cfg.Paging.MaxPerPage),
	)
	handler := httpapi.NewHandler(svc, logger, httpapi.WithItems(cfg.Paging.DefaultItems, cfg.Paging.MaxItems))

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(handler, cfg.HTTP.Prefix)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalogd listening",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("driver", cfg.DB.Driver),
			zap.String("prefix", cfg.HTTP.Prefix),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("catalogd stopped")

	return nil
}
