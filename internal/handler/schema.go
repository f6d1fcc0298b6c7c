package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/ledger"
	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/model"
)

// Request bodies arrive as loose JSON objects; each endpoint's schema is
// applied once here, at the boundary. Numeric fields coerce to 0 on missing
// or non-numeric input, string fields to "" or their declared default. A
// malformed field never fails the request on its own.

type body map[string]interface{}

func parseBody(raw []byte) body {
	var m body
	if len(raw) == 0 || json.Unmarshal(raw, &m) != nil || m == nil {
		return body{}
	}
	return m
}

// num coerces a field to float64: JSON numbers pass through, numeric strings
// parse, everything else defaults to 0.
func (b body) num(key string) float64 {
	switch v := b[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// str coerces a field to string, substituting fallback when absent, empty or
// not a string.
func (b body) str(key, fallback string) string {
	if v, ok := b[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// optStr returns nil when the field is absent, empty or not a string.
func (b body) optStr(key string) *string {
	if v, ok := b[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// stockSetRequest is the schema of POST /api/stock.
type stockSetRequest struct {
	Gold   float64
	Silver float64
	Pwd    string
}

func parseStockSet(raw []byte) stockSetRequest {
	b := parseBody(raw)
	return stockSetRequest{
		Gold:   b.num("gold"),
		Silver: b.num("silver"),
		Pwd:    b.str("pwd", ""),
	}
}

// customerCreateRequest is the schema of POST /api/customers.
type customerCreateRequest struct {
	Name  string
	Phone *string
}

func parseCustomerCreate(raw []byte) customerCreateRequest {
	b := parseBody(raw)
	return customerCreateRequest{
		Name:  b.str("name", ""),
		Phone: b.optStr("phone"),
	}
}

// transactionFromBody builds a ledger entry from a loose submission. Defaults
// follow the front end's contract: tx_id falls back to "TX" + epoch millis,
// mode to BUY, product to Gold, every numeric field to 0.
func transactionFromBody(b body, now time.Time) model.Transaction {
	return model.Transaction{
		TxID:      b.str("tx_id", "TX"+strconv.FormatInt(now.UnixMilli(), 10)),
		Mode:      b.str("mode", ledger.ModeBuy),
		Product:   b.str("product", ledger.ProductGold),
		Customer:  b.optStr("customer"),
		Gross:     b.num("gross"),
		Touch:     b.num("touch"),
		Sample:    b.num("sample"),
		Fine:      b.num("fine"),
		FineAfter: b.num("fineAfter"),
		GivenGold: b.num("givenGold"),
		DiffGold:  b.num("diffGold"),
		Rate:      b.num("rate"),
		Charges:   b.num("charges"),
		FinalCash: b.num("finalCash"),
		GivenCash: b.num("givenCash"),
		RTGS:      b.optStr("rtgs"),
		Net:       b.num("net"),
	}
}

func parseTransactionCreate(raw []byte, now time.Time) model.Transaction {
	return transactionFromBody(parseBody(raw), now)
}

// importRequest is the schema of POST /api/transactions/import.
type importRequest struct {
	Transactions []json.RawMessage `json:"transactions"`
}

func parseImport(raw []byte, now time.Time) []model.Transaction {
	var req importRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil
	}
	txs := make([]model.Transaction, 0, len(req.Transactions))
	for _, item := range req.Transactions {
		txs = append(txs, transactionFromBody(parseBody(item), now))
	}
	return txs
}
