package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/ledger"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/model"
)

const txColumns = `id, tx_id, mode, product, customer,
	gross, touch, sample, fine, fine_after, given_gold, diff_gold,
	rate, charges, final_cash, given_cash, rtgs, net, created_at`

// PGStore implements Store on a pgx connection pool.
type PGStore struct {
	Pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{Pool: pool}
}

func (s *PGStore) GetStock(ctx context.Context) (model.Stock, error) {
	var st model.Stock
	err := s.Pool.QueryRow(ctx,
		`SELECT gold_fine, silver_fine, updated_at FROM stock WHERE id = 1`,
	).Scan(&st.GoldFine, &st.SilverFine, &st.UpdatedAt)
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to read stock: %w", err)
	}
	return st, nil
}

func (s *PGStore) SetStock(ctx context.Context, gold, silver float64) (model.Stock, error) {
	var st model.Stock
	err := s.Pool.QueryRow(ctx,
		`UPDATE stock SET gold_fine = $1, silver_fine = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1
		 RETURNING gold_fine, silver_fine, updated_at`,
		gold, silver,
	).Scan(&st.GoldFine, &st.SilverFine, &st.UpdatedAt)
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to overwrite stock: %w", err)
	}
	return st, nil
}

func (s *PGStore) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, name, phone, created_at FROM customers ORDER BY id DESC LIMIT $1`,
		CustomerListLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *PGStore) CreateCustomer(ctx context.Context, name string, phone *string) (model.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return model.Customer{}, ErrNameRequired
	}

	var c model.Customer
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO customers (name, phone) VALUES ($1, $2)
		 RETURNING id, name, phone, created_at`,
		name, phone,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.CreatedAt)
	if err != nil {
		return model.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}
	return c, nil
}

func (s *PGStore) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT `+txColumns+` FROM transactions ORDER BY id DESC LIMIT $1`,
		TransactionListLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := []model.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (s *PGStore) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, model.Stock, error) {
	conn, err := s.Pool.Acquire(ctx)
	if err != nil {
		return model.Transaction{}, model.Stock{}, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	dbtx, err := conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return model.Transaction{}, model.Stock{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer dbtx.Rollback(ctx)

	inserted, stock, err := applyTransaction(ctx, dbtx, tx)
	if err != nil {
		return model.Transaction{}, model.Stock{}, err
	}

	if err := dbtx.Commit(ctx); err != nil {
		return model.Transaction{}, model.Stock{}, fmt.Errorf("failed to commit: %w", err)
	}
	return inserted, stock, nil
}

func (s *PGStore) CreateTransactionBatch(ctx context.Context, txs []model.Transaction) error {
	conn, err := s.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	dbtx, err := conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer dbtx.Rollback(ctx)

	for _, tx := range txs {
		if _, _, err := applyTransaction(ctx, dbtx, tx); err != nil {
			return err
		}
	}

	if err := dbtx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// applyTransaction inserts the ledger row and moves the locked stock balance
// inside the caller's database transaction.
func applyTransaction(ctx context.Context, dbtx pgx.Tx, tx model.Transaction) (model.Transaction, model.Stock, error) {
	var current model.Stock
	err := dbtx.QueryRow(ctx,
		`SELECT gold_fine, silver_fine, updated_at FROM stock WHERE id = 1 FOR UPDATE`,
	).Scan(&current.GoldFine, &current.SilverFine, &current.UpdatedAt)
	if err != nil {
		return model.Transaction{}, model.Stock{}, fmt.Errorf("failed to lock stock row: %w", err)
	}

	row := dbtx.QueryRow(ctx,
		`INSERT INTO transactions (
			tx_id, mode, product, customer,
			gross, touch, sample, fine, fine_after, given_gold, diff_gold,
			rate, charges, final_cash, given_cash, rtgs, net
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17
		) RETURNING `+txColumns,
		tx.TxID, tx.Mode, tx.Product, tx.Customer,
		tx.Gross, tx.Touch, tx.Sample, tx.Fine, tx.FineAfter, tx.GivenGold, tx.DiffGold,
		tx.Rate, tx.Charges, tx.FinalCash, tx.GivenCash, tx.RTGS, tx.Net,
	)
	inserted, err := scanTransaction(row)
	if err != nil {
		return model.Transaction{}, model.Stock{}, err
	}

	next := ledger.Apply(current, inserted, time.Now())
	_, err = dbtx.Exec(ctx,
		`UPDATE stock SET gold_fine = $1, silver_fine = $2, updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
		next.GoldFine, next.SilverFine,
	)
	if err != nil {
		return model.Transaction{}, model.Stock{}, fmt.Errorf("failed to update stock: %w", err)
	}
	return inserted, next, nil
}

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var tx model.Transaction
	err := row.Scan(
		&tx.ID, &tx.TxID, &tx.Mode, &tx.Product, &tx.Customer,
		&tx.Gross, &tx.Touch, &tx.Sample, &tx.Fine, &tx.FineAfter, &tx.GivenGold, &tx.DiffGold,
		&tx.Rate, &tx.Charges, &tx.FinalCash, &tx.GivenCash, &tx.RTGS, &tx.Net, &tx.CreatedAt,
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}
	return tx, nil
}
