package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/config"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/database"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/handler"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/logger"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/migration"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/router"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/store"
)

func main() {
	cfg := config.Load()

	_ = logger.Init("bullion-desk")
	log := logger.L()
	defer log.Sync()

	db := &database.PostgreSQL{Cfg: cfg.Postgres}

	// Schema bootstrap is idempotent; a fresh database comes up with the
	// three tables and the seeded stock row.
	mig := &migration.Migrate{Db: db}
	if err := mig.MigrateUp(); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	pool, err := db.Connect(context.Background())
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pool.Close()
	log.Info("connected to PostgreSQL", zap.String("db", cfg.Postgres.DB))

	queue := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr})
	defer queue.Close()

	st := store.NewPGStore(pool)
	h := handler.New(st, queue, cfg.Admin.Password)
	app := router.New(h, cfg.Server.StaticDir, cfg.Redis.Addr)

	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
