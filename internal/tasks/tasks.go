package tasks

import "github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/model"

// Task type names registered with asynq.
const TypeLedgerImport = "ledger:import"

// ImportPayload carries a batch of already-coerced ledger entries through the
// queue. The worker posts the whole batch in one database transaction.
type ImportPayload struct {
	Transactions []model.Transaction `json:"transactions"`
}
