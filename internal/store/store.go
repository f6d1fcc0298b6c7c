package store

import (
	"context"
	"errors"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/model"
)

// List caps. Listing endpoints never return more rows than these regardless
// of table size.
const (
	CustomerListLimit    = 200
	TransactionListLimit = 500
)

// ErrNameRequired is returned by CreateCustomer when name is empty.
var ErrNameRequired = errors.New("name required")

// Store is the persistence contract the handlers and the import worker share.
type Store interface {
	GetStock(ctx context.Context) (model.Stock, error)
	// SetStock unconditionally overwrites both balances (not a delta).
	SetStock(ctx context.Context, gold, silver float64) (model.Stock, error)

	ListCustomers(ctx context.Context) ([]model.Customer, error)
	CreateCustomer(ctx context.Context, name string, phone *string) (model.Customer, error)

	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	// CreateTransaction inserts the ledger entry and posts its fine-after
	// weight onto the stock balance in one database transaction, so the
	// read-modify-write of the singleton row cannot lose a concurrent update.
	CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, model.Stock, error)
	// CreateTransactionBatch applies a whole batch under serializable
	// isolation. Callers retry on serialization failure.
	CreateTransactionBatch(ctx context.Context, txs []model.Transaction) error
}
