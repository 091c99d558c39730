// Package memory holds a process-local implementation of the persistence
// contracts. It backs the test suite and the STORAGE_BACKEND=memory mode used
// for local development without a DynamoDB endpoint.
package memory

import (
	"context"
	"sync"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"
)

type committedKey struct {
	transactionID string
	fingerprint   string
}

// Store keeps customers, categories and transactions behind a single mutex.
// The processed map records every idempotency key ever committed together
// with the payload fingerprint, mirroring the guard items the DynamoDB
// adapter writes. Each persistence contract is exposed through a narrow view
// (Customers, Categories, Transactions, Settlements) over the shared state.
type Store struct {
	mu           sync.Mutex
	customers    map[string]entities.Customer
	categories   map[string]entities.WasteCategory
	transactions map[string]entities.Transaction
	processed    map[string]committedKey
}

func NewStore() *Store {
	return &Store{
		customers:    make(map[string]entities.Customer),
		categories:   make(map[string]entities.WasteCategory),
		transactions: make(map[string]entities.Transaction),
		processed:    make(map[string]committedKey),
	}
}

// SeedCustomer and SeedCategory exist for local bootstrapping and tests; the
// service itself never creates either.
func (s *Store) SeedCustomer(customer entities.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
}

func (s *Store) SeedCategory(category entities.WasteCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = category
}

func (s *Store) Customers() interfaces.ICustomerRepository       { return customerView{s} }
func (s *Store) Categories() interfaces.ICategoryRepository      { return categoryView{s} }
func (s *Store) Transactions() interfaces.ITransactionRepository { return transactionView{s} }
func (s *Store) Settlements() interfaces.ISettlementRepository   { return settlementView{s} }

func (s *Store) creditLocked(id string, amount float64, guardKey string) (entities.Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return entities.Customer{}, nil
	}
	if _, done := s.processed[guardKey]; done {
		return customer, nil
	}

	customer.Balance += amount
	s.customers[id] = customer
	s.processed[guardKey] = committedKey{}
	return customer, nil
}

type customerView struct{ s *Store }

var _ interfaces.ICustomerRepository = customerView{}

func (v customerView) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.customers[id], nil
}

// CreditBalance applies the increment under the store mutex, at most once per
// idempotency key.
func (v customerView) CreditBalance(ctx context.Context, id string, amount float64, idempotencyKey string) (entities.Customer, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.creditLocked(id, amount, "credit#"+idempotencyKey)
}

type categoryView struct{ s *Store }

var _ interfaces.ICategoryRepository = categoryView{}

func (v categoryView) List(ctx context.Context) ([]entities.WasteCategory, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	categories := make([]entities.WasteCategory, 0, len(v.s.categories))
	for _, category := range v.s.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

type transactionView struct{ s *Store }

var _ interfaces.ITransactionRepository = transactionView{}

func (v transactionView) GetByID(ctx context.Context, id string) (entities.Transaction, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.transactions[id], nil
}

func (v transactionView) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Transaction, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	transactions := make([]entities.Transaction, 0)
	for _, tx := range v.s.transactions {
		if tx.CustomerID == customerID {
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

type settlementView struct{ s *Store }

var _ interfaces.ISettlementRepository = settlementView{}

// Commit settles atomically under the store mutex: the processed-key check,
// the record append and the balance credit all happen before the lock is
// released, so no interleaving can observe one effect without the other.
func (v settlementView) Commit(ctx context.Context, tx entities.Transaction, idempotencyKey string) (entities.Transaction, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if prior, done := s.processed[idempotencyKey]; done {
		if prior.fingerprint != tx.Fingerprint() {
			return entities.Transaction{}, interfaces.ErrCommitConflict
		}
		return s.transactions[prior.transactionID], nil
	}

	if _, ok := s.customers[tx.CustomerID]; !ok {
		return entities.Transaction{}, interfaces.ErrCustomerVanished
	}

	frozen := tx
	frozen.Items = make([]entities.LineItem, len(tx.Items))
	copy(frozen.Items, tx.Items)

	s.transactions[frozen.ID] = frozen
	if _, err := s.creditLocked(frozen.CustomerID, frozen.TotalAmount, "settle#"+idempotencyKey); err != nil {
		return entities.Transaction{}, err
	}
	s.processed[idempotencyKey] = committedKey{
		transactionID: frozen.ID,
		fingerprint:   frozen.Fingerprint(),
	}
	return frozen, nil
}
