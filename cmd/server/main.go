package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mserebryaakov/aggregator-pim/config"
	"github.com/mserebryaakov/aggregator-pim/internal/auth"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/server"
	"github.com/mserebryaakov/aggregator-pim/internal/storage"
	"github.com/mserebryaakov/aggregator-pim/pkg/httpserver"
	"github.com/mserebryaakov/aggregator-pim/pkg/logger"
	"github.com/mserebryaakov/aggregator-pim/pkg/postgres"
)

func main() {
	log := logger.NewLogger("debug", &logger.MainLogHook{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configs: %v", err)
	}

	env, err := config.GetEnvironment(cfg.Database.Driver)
	if err != nil {
		log.Fatal(err)
	}

	db, err := storage.Open(storage.Config{
		Driver: cfg.Database.Driver,
		Postgres: postgres.Config{
			Host:     env.PgHost,
			Port:     env.PgPort,
			Username: env.PgUser,
			Password: env.PgPassword,
			DBName:   env.PgDbName,
			SSLMode:  env.SSLMode,
			TimeZone: env.TimeZone,
		},
		SQLitePath: cfg.Database.SQLitePath,
	})
	if err != nil {
		log.Fatalf("failed connection to db: %v", err)
	}

	if err := storage.RunMigration(db); err != nil {
		log.Fatalf("failed migration: %v", err)
	}

	hash, err := auth.HashPassword(env.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}
	if _, err := storage.SeedUser(db, env.AdminLogin, hash, entity.RoleAdmin, entity.RoleUser); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.Driver != storage.DriverSQLite && cfg.Database.KeepAliveInterval > 0 {
		dbLog := logger.NewLogger(env.LogLvl, &logger.ComponentHook{Name: "Postgres"})
		go postgres.KeepAlive(ctx, db, cfg.Database.KeepAliveInterval, dbLog)
	}

	router := server.NewRouter(db, auth.NewTokenStore(), server.Config{
		LogLevel:  env.LogLvl,
		OmAppLink: env.OmAppLink,
		OmTimeout: cfg.Om.Timeout,
	})

	srv := new(httpserver.Server)

	go func() {
		if err := srv.Run(cfg.Server.Port, router); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed running server %v", err)
		}
	}()
	log.Infof("listening on :%s", cfg.Server.Port)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	oscall := <-interrupt
	log.Infof("Shutdown server, %s", oscall)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error occured on server shutting down: %v", err)
	}
}
