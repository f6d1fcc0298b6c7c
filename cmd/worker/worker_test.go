package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgconn"
	"go.uber.org/zap"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/ledger"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/model"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/tasks"
)

type batchStore struct {
	stock   model.Stock
	batches [][]model.Transaction
	// errs is consumed one per CreateTransactionBatch call; nil means success.
	errs []error
}

func (b *batchStore) GetStock(ctx context.Context) (model.Stock, error) { return b.stock, nil }

func (b *batchStore) SetStock(ctx context.Context, gold, silver float64) (model.Stock, error) {
	b.stock = model.Stock{GoldFine: gold, SilverFine: silver}
	return b.stock, nil
}

func (b *batchStore) ListCustomers(ctx context.Context) ([]model.Customer, error) { return nil, nil }

func (b *batchStore) CreateCustomer(ctx context.Context, name string, phone *string) (model.Customer, error) {
	return model.Customer{}, nil
}

func (b *batchStore) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return nil, nil
}

func (b *batchStore) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, model.Stock, error) {
	return tx, b.stock, nil
}

func (b *batchStore) CreateTransactionBatch(ctx context.Context, txs []model.Transaction) error {
	var err error
	if len(b.errs) > 0 {
		err, b.errs = b.errs[0], b.errs[1:]
	}
	if err != nil {
		return err
	}
	b.batches = append(b.batches, txs)
	for _, tx := range txs {
		b.stock = ledger.Apply(b.stock, tx, b.stock.UpdatedAt)
	}
	return nil
}

func importTask(t *testing.T, txs []model.Transaction) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(tasks.ImportPayload{Transactions: txs})
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(tasks.TypeLedgerImport, payload)
}

func TestHandleImport(t *testing.T) {
	txs := []model.Transaction{
		{Product: ledger.ProductGold, Mode: ledger.ModeBuy, FineAfter: 10},
		{Product: ledger.ProductGold, Mode: ledger.ModeSell, FineAfter: 4},
	}

	st := &batchStore{}
	imp := &importer{store: st, log: zap.NewNop()}

	if err := imp.handleImport(context.Background(), importTask(t, txs)); err != nil {
		t.Fatalf("handleImport: %v", err)
	}
	if len(st.batches) != 1 || len(st.batches[0]) != 2 {
		t.Fatalf("batches = %v", st.batches)
	}
	if st.stock.GoldFine != 6 {
		t.Errorf("gold = %v, want 6", st.stock.GoldFine)
	}
}

func TestHandleImportBadPayload(t *testing.T) {
	imp := &importer{store: &batchStore{}, log: zap.NewNop()}
	task := asynq.NewTask(tasks.TypeLedgerImport, []byte("not json"))

	if err := imp.handleImport(context.Background(), task); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestHandleImportRetriesSerializationConflict(t *testing.T) {
	conflict := &pgconn.PgError{Code: serializationFailure}
	st := &batchStore{errs: []error{conflict}}
	imp := &importer{store: st, log: zap.NewNop()}

	txs := []model.Transaction{{Product: ledger.ProductGold, Mode: ledger.ModeBuy, FineAfter: 1}}
	if err := imp.handleImport(context.Background(), importTask(t, txs)); err != nil {
		t.Fatalf("handleImport after conflict: %v", err)
	}
	if len(st.batches) != 1 {
		t.Errorf("batch not applied after retry")
	}
}

func TestHandleImportStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	st := &batchStore{errs: []error{boom, nil, nil}}
	imp := &importer{store: st, log: zap.NewNop()}

	txs := []model.Transaction{{Product: ledger.ProductGold, Mode: ledger.ModeBuy, FineAfter: 1}}
	err := imp.handleImport(context.Background(), importTask(t, txs))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if len(st.batches) != 0 {
		t.Errorf("batch applied despite storage fault")
	}
}
