package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TransactionKind distinguishes deposits from withdrawals.
//
// The stored values match the original counter flow ("setor" = deposit). Only
// deposits are produced today; the withdrawal kind exists for the record
// format.
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "setor"
	TransactionKindWithdrawal TransactionKind = "tarik"
)

// Transaction is the immutable settlement record of one committed cart.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (customer_id-index): customer_id
//
// CustomerName and the line items are frozen snapshots; catalog price edits
// after commit never alter historical totals. Records are append-only and are
// never mutated or deleted by this service.
type Transaction struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CreatedAt     time.Time       `json:"created_at"`
	Kind          TransactionKind `json:"kind"`
	Items         []LineItem      `json:"items"`
	TotalWeightKg float64         `json:"total_weight_kg"`
	TotalAmount   float64         `json:"total_amount"`
}

type fingerprintItem struct {
	CategoryID string  `json:"category_id"`
	WeightKg   float64 `json:"weight_kg"`
	PricePerKg float64 `json:"price_per_kg"`
}

type fingerprintPayload struct {
	CustomerID    string            `json:"customer_id"`
	Kind          TransactionKind   `json:"kind"`
	TotalWeightKg float64           `json:"total_weight_kg"`
	TotalAmount   float64           `json:"total_amount"`
	Items         []fingerprintItem `json:"items"`
}

// Fingerprint hashes the settlement-relevant payload of the transaction.
// Stores compare it against the fingerprint recorded under an idempotency key
// to tell a retry (same payload) from a key reuse (different payload) without
// keeping the whole payload twice. Ids and timestamps are excluded since a
// retried commit regenerates both.
func (t Transaction) Fingerprint() string {
	payload := fingerprintPayload{
		CustomerID:    t.CustomerID,
		Kind:          t.Kind,
		TotalWeightKg: t.TotalWeightKg,
		TotalAmount:   t.TotalAmount,
		Items:         make([]fingerprintItem, 0, len(t.Items)),
	}
	for _, item := range t.Items {
		payload.Items = append(payload.Items, fingerprintItem{
			CategoryID: item.CategoryID,
			WeightKg:   item.WeightKg,
			PricePerKg: item.PricePerKg,
		})
	}

	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
