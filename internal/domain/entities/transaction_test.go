package entities

import (
	"testing"
	"time"
)

func settledDeposit() Transaction {
	return Transaction{
		ID:           "tx-1",
		CustomerID:   "n-1",
		CustomerName: "Budi",
		CreatedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Kind:         TransactionKindDeposit,
		Items: []LineItem{
			{ID: "item-1", CategoryID: "cat-paper", CategoryName: "Kertas", WeightKg: 3.0, PricePerKg: 2000},
			{ID: "item-2", CategoryID: "cat-plastic", CategoryName: "Plastik", WeightKg: 1.5, PricePerKg: 1500},
		},
		TotalWeightKg: 4.5,
		TotalAmount:   8250,
	}
}

func TestTransaction_Fingerprint(t *testing.T) {
	t.Run("ignores regenerated ids and timestamps", func(t *testing.T) {
		original := settledDeposit()

		retry := settledDeposit()
		retry.ID = "tx-2"
		retry.CreatedAt = retry.CreatedAt.Add(5 * time.Minute)
		retry.Items[0].ID = "item-9"

		if original.Fingerprint() != retry.Fingerprint() {
			t.Fatal("expected identical fingerprints for a retried payload")
		}
	})

	t.Run("differs when the payload differs", func(t *testing.T) {
		original := settledDeposit()

		for name, mutate := range map[string]func(*Transaction){
			"customer":      func(tx *Transaction) { tx.CustomerID = "n-2" },
			"weight":        func(tx *Transaction) { tx.Items[0].WeightKg = 3.5; tx.TotalWeightKg = 5.0 },
			"price":         func(tx *Transaction) { tx.Items[1].PricePerKg = 1600 },
			"dropped item":  func(tx *Transaction) { tx.Items = tx.Items[:1] },
			"reordered":     func(tx *Transaction) { tx.Items[0], tx.Items[1] = tx.Items[1], tx.Items[0] },
			"kind":          func(tx *Transaction) { tx.Kind = TransactionKindWithdrawal },
			"total tampered": func(tx *Transaction) { tx.TotalAmount = 9000 },
		} {
			other := settledDeposit()
			mutate(&other)
			if original.Fingerprint() == other.Fingerprint() {
				t.Fatalf("%s: expected fingerprints to differ", name)
			}
		}
	})
}
