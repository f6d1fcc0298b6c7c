package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/ledger"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/logger"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/store"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/tasks"
)

// Enqueuer is the slice of asynq.Client the import endpoint needs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Handler maps API requests onto the store and the import queue.
type Handler struct {
	Store    store.Store
	Queue    Enqueuer
	AdminPwd string
}

func New(st store.Store, queue Enqueuer, adminPwd string) *Handler {
	return &Handler{Store: st, Queue: queue, AdminPwd: adminPwd}
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"ok": false, "error": msg})
}

// GetStock handles GET /api/stock.
func (h *Handler) GetStock(c *fiber.Ctx) error {
	st, err := h.Store.GetStock(c.Context())
	if err != nil {
		logger.L().Error("stock read failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "failed to read stock")
	}
	return c.JSON(fiber.Map{"ok": true, "stock": st})
}

// SetStock handles POST /api/stock: an unconditional admin overwrite of both
// balances, guarded by the shared password.
func (h *Handler) SetStock(c *fiber.Ctx) error {
	req := parseStockSet(c.Body())

	if subtle.ConstantTimeCompare([]byte(req.Pwd), []byte(h.AdminPwd)) != 1 {
		return fail(c, fiber.StatusForbidden, "wrong password")
	}

	st, err := h.Store.SetStock(c.Context(), req.Gold, req.Silver)
	if err != nil {
		logger.L().Error("stock overwrite failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "failed to update stock")
	}
	return c.JSON(fiber.Map{"ok": true, "stock": st})
}

// ListCustomers handles GET /api/customers.
func (h *Handler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.Store.ListCustomers(c.Context())
	if err != nil {
		logger.L().Error("customer list failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "failed to list customers")
	}
	return c.JSON(fiber.Map{"ok": true, "customers": customers})
}

// CreateCustomer handles POST /api/customers.
func (h *Handler) CreateCustomer(c *fiber.Ctx) error {
	req := parseCustomerCreate(c.Body())

	customer, err := h.Store.CreateCustomer(c.Context(), req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNameRequired) {
			return fail(c, fiber.StatusBadRequest, "name required")
		}
		logger.L().Error("customer insert failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "failed to create customer")
	}
	return c.JSON(fiber.Map{"ok": true, "customer": customer})
}

// ListTransactions handles GET /api/transactions.
func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.Store.ListTransactions(c.Context())
	if err != nil {
		logger.L().Error("transaction list failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "failed to list transactions")
	}
	return c.JSON(fiber.Map{"ok": true, "transactions": txs})
}

// CreateTransaction handles POST /api/transactions. Every submission is
// accepted: fields are coerced, the entry is inserted and the stock balance
// moves in the same database transaction.
func (h *Handler) CreateTransaction(c *fiber.Ctx) error {
	tx := parseTransactionCreate(c.Body(), time.Now())

	if !ledger.KnownMode(tx.Mode) {
		logger.L().Warn("unrecognized mode treated as sell", zap.String("mode", tx.Mode))
	}
	if !ledger.KnownProduct(tx.Product) {
		logger.L().Warn("unrecognized product treated as silver", zap.String("product", tx.Product))
	}

	inserted, stock, err := h.Store.CreateTransaction(c.Context(), tx)
	if err != nil {
		logger.L().Error("transaction insert failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "failed to create transaction")
	}

	logger.L().Info("transaction posted",
		zap.String("tx_id", inserted.TxID),
		zap.String("mode", inserted.Mode),
		zap.String("product", inserted.Product),
		zap.Float64("fine_after", inserted.FineAfter),
		zap.Float64("gold", stock.GoldFine),
		zap.Float64("silver", stock.SilverFine),
	)
	return c.JSON(fiber.Map{"ok": true, "transaction": inserted})
}

// ImportTransactions handles POST /api/transactions/import: the batch is
// coerced here, then queued for the worker to post atomically.
func (h *Handler) ImportTransactions(c *fiber.Ctx) error {
	txs := parseImport(c.Body(), time.Now())
	if len(txs) == 0 {
		return fail(c, fiber.StatusBadRequest, "transactions required")
	}

	payload, err := json.Marshal(tasks.ImportPayload{Transactions: txs})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "failed to build task payload")
	}

	taskID := uuid.NewString()
	task := asynq.NewTask(tasks.TypeLedgerImport, payload)
	if _, err := h.Queue.Enqueue(task, asynq.TaskID(taskID)); err != nil {
		logger.L().Error("import enqueue failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "failed to enqueue import")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"ok":      true,
		"queued":  len(txs),
		"task_id": taskID,
	})
}
