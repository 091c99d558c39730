package response

import (
	"time"

	"banksampah/internal/domain/entities"
)

type TransactionResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	CreatedAt     time.Time          `json:"created_at"`
	Kind          string             `json:"kind"`
	Items         []LineItemResponse `json:"items"`
	TotalWeightKg float64            `json:"total_weight_kg"`
	TotalAmount   float64            `json:"total_amount"`
}

func FromTransaction(tx entities.Transaction) TransactionResponse {
	items := make([]LineItemResponse, 0, len(tx.Items))
	for _, item := range tx.Items {
		items = append(items, FromLineItem(item))
	}
	return TransactionResponse{
		ID:            tx.ID,
		CustomerID:    tx.CustomerID,
		CustomerName:  tx.CustomerName,
		CreatedAt:     tx.CreatedAt,
		Kind:          string(tx.Kind),
		Items:         items,
		TotalWeightKg: tx.TotalWeightKg,
		TotalAmount:   tx.TotalAmount,
	}
}

func FromTransactions(transactions []entities.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, FromTransaction(tx))
	}
	return out
}
