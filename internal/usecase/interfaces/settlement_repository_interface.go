package interfaces

import (
	"context"
	"errors"

	"banksampah/internal/domain/entities"
)

var (
	// ErrCommitConflict: the idempotency key was already used for a different
	// payload. A caller bug; never retried automatically.
	ErrCommitConflict = errors.New("idempotency key already used with a different payload")
	// ErrCustomerVanished: the bound customer no longer exists at commit time.
	ErrCustomerVanished = errors.New("customer no longer exists")
	// ErrStoreUnavailable: the backing store could not be reached. Safe to
	// retry with the same idempotency key.
	ErrStoreUnavailable = errors.New("settlement store unavailable")
)

// ISettlementRepository is the single privileged write path: it appends the
// transaction record and credits the customer balance as one atomic unit of
// work. A reader must never observe one effect without the other.
//
// Commit is idempotent on the key: resubmitting the same logical settlement
// returns the originally committed transaction instead of appending or
// crediting a second time.
type ISettlementRepository interface {
	Commit(ctx context.Context, tx entities.Transaction, idempotencyKey string) (entities.Transaction, error)
}
