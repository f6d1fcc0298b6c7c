package database

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/config"
)

// PostgreSQL connects the ledger database.
type PostgreSQL struct {
	Cfg config.PostgresConfig
}

func (pg *PostgreSQL) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, pg.ConnectionURI())
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (pg *PostgreSQL) Close(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}

func (pg *PostgreSQL) ConnectionURI() string {
	return pg.Cfg.ConnectionURI()
}
