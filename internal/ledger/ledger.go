package ledger

import (
	"time"

	"github.com/bombaybullionrefinery-maker/bombay-bullion-website/internal/model"
)

// Closed variants for transaction mode and product. Unrecognized values fall
// through to the else branch (sell / silver), same contract the front end has
// always relied on; callers are expected to warn when that happens.
const (
	ModeBuy  = "BUY"
	ModeSell = "SELL"

	ProductGold   = "Gold"
	ProductSilver = "Silver"
)

// Delta returns the signed fine-weight change a transaction applies to its
// target balance: +fineAfter on a buy, -fineAfter on anything else.
func Delta(mode string, fineAfter float64) float64 {
	if mode == ModeBuy {
		return fineAfter
	}
	return -fineAfter
}

// Apply posts tx onto the current balance and returns the new one. Only the
// balance selected by tx.Product moves; the other metal is untouched. No
// floor: balances may go negative.
func Apply(current model.Stock, tx model.Transaction, now time.Time) model.Stock {
	next := current
	if tx.Product == ProductGold {
		next.GoldFine += Delta(tx.Mode, tx.FineAfter)
	} else {
		next.SilverFine += Delta(tx.Mode, tx.FineAfter)
	}
	next.UpdatedAt = now
	return next
}

// KnownMode reports whether mode is one of the closed variants.
func KnownMode(mode string) bool {
	return mode == ModeBuy || mode == ModeSell
}

// KnownProduct reports whether product is one of the closed variants.
func KnownProduct(product string) bool {
	return product == ProductGold || product == ProductSilver
}
