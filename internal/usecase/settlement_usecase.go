package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidIdempotencyKey = errors.New("idempotency key is required")
	// ErrCommitConflict: the idempotency key was reused for a different cart.
	// Fatal to this cart; never retried automatically.
	ErrCommitConflict = errors.New("commit conflict: idempotency key reused with a different payload")
	// ErrPersistenceUnavailable: the store could not complete the commit.
	// Retrying with the identical idempotency key is safe.
	ErrPersistenceUnavailable = errors.New("settlement persistence unavailable")
	// ErrCustomerVanished: the bound customer disappeared between binding and
	// commit. The cart must be rebuilt against a valid customer.
	ErrCustomerVanished = errors.New("bound customer no longer exists")
)

// ISettlementUseCase is the settlement engine: it turns a frozen cart into an
// immutable transaction record and credits the customer's balance, both as a
// single atomic unit of work keyed by the caller's idempotency key.
type ISettlementUseCase interface {
	Checkout(ctx context.Context, cartID, idempotencyKey string) (entities.Transaction, error)
	Commit(ctx context.Context, snapshot entities.CartSnapshot, idempotencyKey string) (entities.Transaction, error)
}

type SettlementUseCase struct {
	carts *CartUseCase
	repo  interfaces.ISettlementRepository
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

func NewSettlementUseCase(carts *CartUseCase, repo interfaces.ISettlementRepository) *SettlementUseCase {
	return &SettlementUseCase{carts: carts, repo: repo}
}

// Checkout settles a live cart. While the commit is outstanding no second
// checkout can start for the same cart; on failure the cart stays live so the
// caller can retry with the identical key (PersistenceUnavailable) or discard
// and rebuild (CommitConflict, CustomerVanished).
func (u *SettlementUseCase) Checkout(ctx context.Context, cartID, idempotencyKey string) (entities.Transaction, error) {
	snapshot, err := u.carts.beginCheckout(cartID)
	if err != nil {
		return entities.Transaction{}, err
	}

	tx, err := u.Commit(ctx, snapshot, idempotencyKey)
	if err != nil {
		u.carts.endCheckout(cartID, false)
		return entities.Transaction{}, err
	}

	u.carts.endCheckout(cartID, true)
	return tx, nil
}

// Commit is the engine proper. The snapshot already guarantees a bound
// customer, at least one item and positive totals; the checks here are
// defensive re-validation, not new business rules. Totals are recomputed from
// the frozen items so a stored total can never drift from its inputs.
func (u *SettlementUseCase) Commit(ctx context.Context, snapshot entities.CartSnapshot, idempotencyKey string) (entities.Transaction, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey == "" {
		return entities.Transaction{}, ErrInvalidIdempotencyKey
	}
	if snapshot.CustomerID == "" {
		return entities.Transaction{}, entities.ErrNoCustomerBound
	}
	if len(snapshot.Items) == 0 {
		return entities.Transaction{}, entities.ErrEmptyCart
	}

	var totalWeight, totalAmount float64
	for _, item := range snapshot.Items {
		totalWeight += item.WeightKg
		totalAmount += item.Subtotal()
	}
	if totalWeight <= 0 || totalAmount <= 0 {
		return entities.Transaction{}, entities.ErrInvalidWeight
	}

	items := make([]entities.LineItem, len(snapshot.Items))
	copy(items, snapshot.Items)

	tx := entities.Transaction{
		ID:            uuid.NewString(),
		CustomerID:    snapshot.CustomerID,
		CustomerName:  snapshot.CustomerName,
		CreatedAt:     time.Now().UTC(),
		Kind:          entities.TransactionKindDeposit,
		Items:         items,
		TotalWeightKg: totalWeight,
		TotalAmount:   totalAmount,
	}

	log.Printf("[settlement][usecase] commit start customer_id=%s idempotency_key=%s total_amount=%v", tx.CustomerID, idempotencyKey, tx.TotalAmount)
	committed, err := u.repo.Commit(ctx, tx, idempotencyKey)
	if err != nil {
		log.Printf("[settlement][usecase] commit failed customer_id=%s idempotency_key=%s err=%v", tx.CustomerID, idempotencyKey, err)
		switch {
		case errors.Is(err, interfaces.ErrCommitConflict):
			return entities.Transaction{}, ErrCommitConflict
		case errors.Is(err, interfaces.ErrCustomerVanished):
			return entities.Transaction{}, ErrCustomerVanished
		default:
			return entities.Transaction{}, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
		}
	}

	log.Printf("[settlement][usecase] commit success transaction_id=%s customer_id=%s total_amount=%v", committed.ID, committed.CustomerID, committed.TotalAmount)
	return committed, nil
}
