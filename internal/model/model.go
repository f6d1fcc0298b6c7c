package model

import "time"

// Stock is the desk's single running balance of fine metal. Exactly one row
// exists (id = 1); it is mutated by every accepted transaction and by the
// admin overwrite, never deleted. Wire keys match the front end.
type Stock struct {
	GoldFine   float64   `json:"Gold"`
	SilverFine float64   `json:"Silver"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Customer is an entry in the desk's roster. Immutable once created.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is one immutable ledger entry. Its fine-after weight is applied
// to the stock balance exactly once, at insert time.
type Transaction struct {
	ID        int64     `json:"id"`
	TxID      string    `json:"tx_id"`
	Mode      string    `json:"mode"`
	Product   string    `json:"product"`
	Customer  *string   `json:"customer"`
	Gross     float64   `json:"gross"`
	Touch     float64   `json:"touch"`
	Sample    float64   `json:"sample"`
	Fine      float64   `json:"fine"`
	FineAfter float64   `json:"fineAfter"`
	GivenGold float64   `json:"givenGold"`
	DiffGold  float64   `json:"diffGold"`
	Rate      float64   `json:"rate"`
	Charges   float64   `json:"charges"`
	FinalCash float64   `json:"finalCash"`
	GivenCash float64   `json:"givenCash"`
	RTGS      *string   `json:"rtgs"`
	Net       float64   `json:"net"`
	CreatedAt time.Time `json:"created_at"`
}
