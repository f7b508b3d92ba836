package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beatbridge/beatbridge-api/internal/api"
	"github.com/beatbridge/beatbridge-api/internal/core/ports"
	mongodb "github.com/beatbridge/beatbridge-api/internal/infrastructure/db/mongo"
	redisdb "github.com/beatbridge/beatbridge-api/internal/infrastructure/db/redis"
	"github.com/beatbridge/beatbridge-api/internal/infrastructure/mail"
	"github.com/beatbridge/beatbridge-api/internal/pkg/config"
	"github.com/beatbridge/beatbridge-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := mongodb.NewJamSessionRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("jam session indexes failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	var notifier ports.Notifier
	if cfg.SMTP.Host != "" {
		mailer, err := mail.NewMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			TLS:      cfg.SMTP.TLS,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("smtp client failed")
		}
		notifier = mailer
	} else {
		log.Warn().Msg("smtp not configured, verification emails disabled")
	}

	e := api.NewRouter(cfg, db, rdb, notifier, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("beatbridge api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
