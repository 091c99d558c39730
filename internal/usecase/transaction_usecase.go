package usecase

import (
	"context"
	"errors"
	"strings"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidTransactionID = errors.New("invalid transaction id")
)

// ITransactionUseCase exposes the committed settlement history. Records are
// read-only; nothing here can mutate or delete them.
type ITransactionUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Transaction, error)
	ListByCustomer(ctx context.Context, customerID string) ([]entities.Transaction, error)
}

type TransactionUseCase struct {
	repo interfaces.ITransactionRepository
}

var _ ITransactionUseCase = (*TransactionUseCase)(nil)

func NewTransactionUseCase(repo interfaces.ITransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

func (u *TransactionUseCase) GetByID(ctx context.Context, id string) (entities.Transaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Transaction{}, ErrInvalidTransactionID
	}

	tx, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Transaction{}, err
	}
	if tx.ID == "" {
		return entities.Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

func (u *TransactionUseCase) ListByCustomer(ctx context.Context, customerID string) ([]entities.Transaction, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidIdentifier
	}
	return u.repo.ListByCustomerID(ctx, customerID)
}
