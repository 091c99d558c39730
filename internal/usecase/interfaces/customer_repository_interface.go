package interfaces

import (
	"context"

	"banksampah/internal/domain/entities"
)

// ICustomerRepository abstracts read access to the customer directory plus the
// single balance mutation this service is allowed to perform.
//
// GetByID returns a zero-value Customer (empty ID) when nothing matches.
// CreditBalance must be an atomic increment-by-amount on the stored balance,
// never a read-then-write; concurrent settlements for the same customer must
// not lose updates. The idempotency key travels with the mutation so adapters
// that guard duplicates at this level can do so.
type ICustomerRepository interface {
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	CreditBalance(ctx context.Context, id string, amount float64, idempotencyKey string) (entities.Customer, error)
}
