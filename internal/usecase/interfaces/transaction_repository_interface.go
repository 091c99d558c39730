package interfaces

import (
	"context"

	"banksampah/internal/domain/entities"
)

// ITransactionRepository abstracts read access to committed settlement
// records. Writes go exclusively through ISettlementRepository so the record
// append and the balance credit share one unit of work.
//
// GetByID returns a zero-value Transaction (empty ID) when nothing matches.
type ITransactionRepository interface {
	GetByID(ctx context.Context, id string) (entities.Transaction, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Transaction, error)
}
