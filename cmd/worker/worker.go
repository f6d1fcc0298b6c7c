package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgconn"
	"go.uber.org/zap"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/config"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/database"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/logger"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/store"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/tasks"
)

// serializationFailure is the Postgres error code a serializable transaction
// reports when it conflicts with a concurrent one.
const serializationFailure = "40001"

const maxRetries = 5

type importer struct {
	store store.Store
	log   *zap.Logger
}

func main() {
	cfg := config.Load()

	_ = logger.Init("bullion-desk-worker")
	log := logger.L()
	defer log.Sync()

	db := &database.PostgreSQL{Cfg: cfg.Postgres}
	pool, err := db.Connect(context.Background())
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pool.Close()

	imp := &importer{
		store: store.NewPGStore(pool),
		log:   log,
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Addr},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeLedgerImport, imp.handleImport)

	log.Info("worker started", zap.Int("concurrency", cfg.Worker.Concurrency))
	if err := srv.Run(mux); err != nil {
		log.Fatal("could not run worker", zap.Error(err))
	}
}

// handleImport posts a queued batch of ledger entries. The whole batch runs
// under serializable isolation; conflicts with concurrent submissions are
// retried with linear backoff.
func (i *importer) handleImport(ctx context.Context, t *asynq.Task) error {
	var payload tasks.ImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := i.store.CreateTransactionBatch(ctx, payload.Transactions)
		if err == nil {
			i.log.Info("import batch posted",
				zap.Int("transactions", len(payload.Transactions)),
				zap.Int("attempt", attempt),
			)
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == serializationFailure {
			i.log.Warn("serialization conflict, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
			)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		return err
	}

	return fmt.Errorf("import failed after %d retries due to serialization conflicts", maxRetries)
}
