package model

import "time"

// TransactionType selects the pricing formula applied by the engine.
type TransactionType string

const (
	TxnCrowRental    TransactionType = "crow_rental"
	TxnTreeRental    TransactionType = "tree_rental"
	TxnShopPurchase  TransactionType = "shop_purchase"
	TxnPassiveIncome TransactionType = "passive_income"
)

// TransactionRecord is an immutable receipt of one completed economic
// operation. Records are append-only; Sequence is assigned by storage.
type TransactionRecord struct {
	Sequence  int64           `json:"sequence"`
	Type      TransactionType `json:"type"`
	Gross     float64         `json:"gross_amount"`
	Tax       float64         `json:"tax_amount"`
	Net       float64         `json:"net_amount"`
	EntityID  string          `json:"entity_id,omitempty"`
	Username  string          `json:"username"`
	Timestamp time.Time       `json:"timestamp"`
}
