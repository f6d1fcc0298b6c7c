package handler

import (
	"strconv"
	"testing"
	"time"
)

func TestBodyNum(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		key  string
		want float64
	}{
		{"json number", `{"gross":12.5}`, "gross", 12.5},
		{"numeric string", `{"gross":"7.25"}`, "gross", 7.25},
		{"non-numeric string", `{"gross":"heavy"}`, "gross", 0},
		{"absent", `{}`, "gross", 0},
		{"null", `{"gross":null}`, "gross", 0},
		{"bool", `{"gross":true}`, "gross", 0},
		{"object", `{"gross":{"a":1}}`, "gross", 0},
		{"negative", `{"gross":-3}`, "gross", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := parseBody([]byte(tt.raw))
			if got := b.num(tt.key); got != tt.want {
				t.Errorf("num(%q) on %s = %v, want %v", tt.key, tt.raw, got, tt.want)
			}
		})
	}
}

func TestBodyStr(t *testing.T) {
	b := parseBody([]byte(`{"mode":"SELL","empty":"","number":42}`))

	if got := b.str("mode", "BUY"); got != "SELL" {
		t.Errorf("str(mode) = %q", got)
	}
	if got := b.str("empty", "BUY"); got != "BUY" {
		t.Errorf("empty string should fall back, got %q", got)
	}
	if got := b.str("number", "BUY"); got != "BUY" {
		t.Errorf("non-string should fall back, got %q", got)
	}
	if got := b.str("absent", "Gold"); got != "Gold" {
		t.Errorf("absent should fall back, got %q", got)
	}
}

func TestBodyOptStr(t *testing.T) {
	b := parseBody([]byte(`{"customer":"Raj","empty":"","number":1}`))

	if got := b.optStr("customer"); got == nil || *got != "Raj" {
		t.Errorf("optStr(customer) = %v", got)
	}
	for _, key := range []string{"empty", "number", "absent"} {
		if got := b.optStr(key); got != nil {
			t.Errorf("optStr(%q) = %v, want nil", key, got)
		}
	}
}

func TestParseBodyMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json", "null", `[1,2]`} {
		b := parseBody([]byte(raw))
		if b == nil {
			t.Errorf("parseBody(%q) returned nil map", raw)
		}
		if got := b.num("gross"); got != 0 {
			t.Errorf("parseBody(%q).num = %v", raw, got)
		}
	}
}

func TestTransactionDefaults(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tx := parseTransactionCreate([]byte(`{}`), now)

	if tx.Mode != "BUY" || tx.Product != "Gold" {
		t.Errorf("mode %q product %q", tx.Mode, tx.Product)
	}
	wantTxID := "TX" + strconv.FormatInt(now.UnixMilli(), 10)
	if tx.TxID != wantTxID {
		t.Errorf("tx_id = %q, want %q", tx.TxID, wantTxID)
	}
	if tx.Customer != nil || tx.RTGS != nil {
		t.Errorf("optional strings should be nil: %v %v", tx.Customer, tx.RTGS)
	}
	if tx.Gross != 0 || tx.FineAfter != 0 || tx.Net != 0 {
		t.Errorf("numerics should default to 0: %+v", tx)
	}
}

func TestTransactionFullBody(t *testing.T) {
	now := time.Now()
	tx := parseTransactionCreate([]byte(`{
		"tx_id":"TX123","mode":"SELL","product":"Silver","customer":"Raj",
		"gross":100,"touch":91.6,"sample":0.5,"fine":91.1,"fineAfter":90.6,
		"givenGold":1,"diffGold":0.4,"rate":7500,"charges":50,
		"finalCash":679500,"givenCash":679000,"rtgs":"RTGS99","net":500
	}`), now)

	if tx.TxID != "TX123" || tx.Mode != "SELL" || tx.Product != "Silver" {
		t.Errorf("identity fields: %+v", tx)
	}
	if tx.Customer == nil || *tx.Customer != "Raj" {
		t.Errorf("customer = %v", tx.Customer)
	}
	if tx.RTGS == nil || *tx.RTGS != "RTGS99" {
		t.Errorf("rtgs = %v", tx.RTGS)
	}
	if tx.Touch != 91.6 || tx.FineAfter != 90.6 || tx.Rate != 7500 {
		t.Errorf("numerics: %+v", tx)
	}
}

func TestParseImport(t *testing.T) {
	now := time.Now()

	txs := parseImport([]byte(`{"transactions":[{"fineAfter":1},{"fineAfter":"2"}]}`), now)
	if len(txs) != 2 {
		t.Fatalf("len = %d", len(txs))
	}
	if txs[0].FineAfter != 1 || txs[1].FineAfter != 2 {
		t.Errorf("fineAfter values: %v %v", txs[0].FineAfter, txs[1].FineAfter)
	}

	if got := parseImport([]byte(`not json`), now); got != nil {
		t.Errorf("malformed import = %v", got)
	}
	if got := parseImport([]byte(`{}`), now); len(got) != 0 {
		t.Errorf("missing transactions = %v", got)
	}
}
