package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/api"
	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/i18n"
	"github.com/terraincognita07/bloom/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	secretKey, err := cfg.ResolveSecretKey()
	if err != nil {
		return fmt.Errorf("invalid SECRET_KEY: %w", err)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.Locales())
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := newInsightProvider(ctx, cfg.Insight, log)
	if err != nil {
		return fmt.Errorf("insight provider init failed: %w", err)
	}

	handler, err := api.NewHandler(database, api.Settings{
		SecretKey:      secretKey,
		BaseURL:        cfg.BaseURL,
		Location:       cfg.Location,
		CookieSecure:   cfg.CookieSecure,
		RiskPolicy:     cfg.RiskPolicy,
		InsightTimeout: cfg.Insight.Timeout,
	}, i18nManager, provider, newMailer(cfg.SMTP, log), log)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler)
	janitor := services.NewSignInLinkJanitor(handler.SignInLinkPruner(), services.DefaultLinkJanitorInterval, log)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return janitor.Run(groupCtx)
	})
	group.Go(func() error {
		log.Info("bloom listening",
			zap.String("addr", "0.0.0.0:"+cfg.Port),
			zap.String("db", cfg.DBPath),
			zap.String("tz", cfg.Location.String()),
			zap.String("insight_provider", cfg.Insight.Provider),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		log.Info("bloom stopped")
		return nil
	})

	return group.Wait()
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Bloom",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
