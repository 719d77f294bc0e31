package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tenantscore/rental-admin/internal/api"
	"github.com/tenantscore/rental-admin/internal/core/service"
	"github.com/tenantscore/rental-admin/internal/core/token"
	"github.com/tenantscore/rental-admin/internal/infrastructure/config"
	appmongo "github.com/tenantscore/rental-admin/internal/infrastructure/db/mongo"
	appredis "github.com/tenantscore/rental-admin/internal/infrastructure/db/redis"
	"github.com/tenantscore/rental-admin/internal/infrastructure/mailer"
	"github.com/tenantscore/rental-admin/internal/infrastructure/queue"
	"github.com/tenantscore/rental-admin/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Record store ---
	mongoClient, db, err := appmongo.Connect(ctx, appmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := appmongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Login limiter ---
	rdb, err := appredis.Connect(ctx, appredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Notification channel ---
	smtp, err := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mailer setup failed")
	}

	dispatcher := queue.NewNotificationDispatcher(0, smtp, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	userOpts := []service.UserServiceOption{
		service.WithLoginLimiter(appredis.NewLoginLimiter(rdb, 0)),
	}
	if cfg.StrictTempPasswords {
		userOpts = append(userOpts, service.WithStrictTempPasswords())
	}

	userService := service.NewUserService(
		appmongo.NewUserRepository(db), tokens, dispatcher, log, userOpts...)
	propertyService := service.NewPropertyService(appmongo.NewPropertyRepository(db), log)

	e := api.NewRouter(api.Deps{
		Users:      userService,
		Properties: propertyService,
		Tokens:     tokens,
		Mongo:      db,
		Redis:      rdb,
		Logger:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
