package usecase

import (
	"context"
	"errors"
	"testing"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"
	mock_interfaces "banksampah/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func depositSnapshot() entities.CartSnapshot {
	return entities.CartSnapshot{
		CartID:       "cart-1",
		CustomerID:   "n-1",
		CustomerName: "Budi",
		Items: []entities.LineItem{
			{ID: "item-1", CategoryID: "cat-paper", CategoryName: "Kertas", WeightKg: 3.0, PricePerKg: 2000},
			{ID: "item-2", CategoryID: "cat-plastic", CategoryName: "Plastik", WeightKg: 1.5, PricePerKg: 1500},
		},
		TotalWeightKg: 4.5,
		TotalAmount:   8250,
	}
}

func TestSettlementUseCase_Commit(t *testing.T) {
	t.Run("success builds a deposit transaction from the snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettlementRepository(ctrl)
		u := NewSettlementUseCase(nil, repo)

		var captured entities.Transaction
		repo.EXPECT().
			Commit(gomock.Any(), gomock.Any(), "key-1").
			DoAndReturn(func(_ context.Context, tx entities.Transaction, _ string) (entities.Transaction, error) {
				captured = tx
				return tx, nil
			})

		tx, err := u.Commit(context.Background(), depositSnapshot(), "key-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.ID == "" || tx.CreatedAt.IsZero() {
			t.Fatalf("expected generated id and timestamp, got %+v", tx)
		}
		if captured.Kind != entities.TransactionKindDeposit {
			t.Fatalf("expected deposit kind, got %s", captured.Kind)
		}
		if captured.CustomerID != "n-1" || captured.CustomerName != "Budi" {
			t.Fatalf("unexpected customer on transaction: %+v", captured)
		}
		if captured.TotalWeightKg != 4.5 || captured.TotalAmount != 8250 {
			t.Fatalf("expected totals 4.5/8250 recomputed from items, got %v/%v", captured.TotalWeightKg, captured.TotalAmount)
		}
		if len(captured.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(captured.Items))
		}
	})

	t.Run("blank idempotency key is rejected before hitting the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettlementRepository(ctrl)
		u := NewSettlementUseCase(nil, repo)

		for _, key := range []string{"", "   ", "\t"} {
			if _, err := u.Commit(context.Background(), depositSnapshot(), key); !errors.Is(err, ErrInvalidIdempotencyKey) {
				t.Fatalf("key %q: expected ErrInvalidIdempotencyKey, got %v", key, err)
			}
		}
	})

	t.Run("snapshot without customer is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettlementRepository(ctrl)
		u := NewSettlementUseCase(nil, repo)

		snapshot := depositSnapshot()
		snapshot.CustomerID = ""
		if _, err := u.Commit(context.Background(), snapshot, "key-1"); !errors.Is(err, entities.ErrNoCustomerBound) {
			t.Fatalf("expected ErrNoCustomerBound, got %v", err)
		}
	})

	t.Run("snapshot without items is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettlementRepository(ctrl)
		u := NewSettlementUseCase(nil, repo)

		snapshot := depositSnapshot()
		snapshot.Items = nil
		if _, err := u.Commit(context.Background(), snapshot, "key-1"); !errors.Is(err, entities.ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("key reuse with a different payload surfaces a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettlementRepository(ctrl)
		u := NewSettlementUseCase(nil, repo)

		repo.EXPECT().
			Commit(gomock.Any(), gomock.Any(), "key-1").
			Return(entities.Transaction{}, interfaces.ErrCommitConflict)

		if _, err := u.Commit(context.Background(), depositSnapshot(), "key-1"); !errors.Is(err, ErrCommitConflict) {
			t.Fatalf("expected ErrCommitConflict, got %v", err)
		}
	})

	t.Run("missing customer at commit time surfaces vanished", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettlementRepository(ctrl)
		u := NewSettlementUseCase(nil, repo)

		repo.EXPECT().
			Commit(gomock.Any(), gomock.Any(), "key-1").
			Return(entities.Transaction{}, interfaces.ErrCustomerVanished)

		if _, err := u.Commit(context.Background(), depositSnapshot(), "key-1"); !errors.Is(err, ErrCustomerVanished) {
			t.Fatalf("expected ErrCustomerVanished, got %v", err)
		}
	})

	t.Run("store failures are wrapped as retryable unavailability", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettlementRepository(ctrl)
		u := NewSettlementUseCase(nil, repo)

		repo.EXPECT().
			Commit(gomock.Any(), gomock.Any(), "key-1").
			Return(entities.Transaction{}, errors.New("dynamodb timeout"))

		if _, err := u.Commit(context.Background(), depositSnapshot(), "key-1"); !errors.Is(err, ErrPersistenceUnavailable) {
			t.Fatalf("expected ErrPersistenceUnavailable, got %v", err)
		}
	})

	t.Run("duplicate retry returns the originally committed transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockISettlementRepository(ctrl)
		u := NewSettlementUseCase(nil, repo)

		original := entities.Transaction{ID: "tx-original", CustomerID: "n-1", Kind: entities.TransactionKindDeposit, TotalAmount: 8250}
		repo.EXPECT().
			Commit(gomock.Any(), gomock.Any(), "key-1").
			Return(original, nil)

		tx, err := u.Commit(context.Background(), depositSnapshot(), "key-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.ID != "tx-original" {
			t.Fatalf("expected original transaction id, got %s", tx.ID)
		}
	})
}

func checkoutFixture(t *testing.T) (*CartUseCase, *SettlementUseCase, *mock_interfaces.MockISettlementRepository, string) {
	t.Helper()
	ctrl := gomock.NewController(t)

	customerRepo := mock_interfaces.NewMockICustomerRepository(ctrl)
	customerRepo.EXPECT().
		GetByID(gomock.Any(), "n-1").
		Return(entities.Customer{ID: "n-1", Name: "Budi", Balance: 10000}, nil).
		AnyTimes()

	categoryRepo := mock_interfaces.NewMockICategoryRepository(ctrl)
	categoryRepo.EXPECT().
		List(gomock.Any()).
		Return([]entities.WasteCategory{
			{ID: "cat-paper", Name: "Kertas", PricePerKg: 2000},
			{ID: "cat-plastic", Name: "Plastik", PricePerKg: 1500},
		}, nil).
		AnyTimes()

	settlementRepo := mock_interfaces.NewMockISettlementRepository(ctrl)

	carts := NewCartUseCase(NewCustomerUseCase(customerRepo), categoryRepo)
	settlements := NewSettlementUseCase(carts, settlementRepo)

	ctx := context.Background()
	cart, err := carts.Create(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := carts.BindCustomer(ctx, cart.ID, "n-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := carts.AddItem(ctx, cart.ID, "cat-paper", 3.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := carts.AddItem(ctx, cart.ID, "cat-plastic", 1.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return carts, settlements, settlementRepo, cart.ID
}

func TestSettlementUseCase_Checkout(t *testing.T) {
	t.Run("committed cart leaves the registry", func(t *testing.T) {
		carts, settlements, repo, cartID := checkoutFixture(t)

		repo.EXPECT().
			Commit(gomock.Any(), gomock.Any(), "key-1").
			DoAndReturn(func(_ context.Context, tx entities.Transaction, _ string) (entities.Transaction, error) {
				return tx, nil
			})

		tx, err := settlements.Checkout(context.Background(), cartID, "key-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.TotalWeightKg != 4.5 || tx.TotalAmount != 8250 {
			t.Fatalf("expected totals 4.5/8250, got %v/%v", tx.TotalWeightKg, tx.TotalAmount)
		}

		if _, err := carts.Get(context.Background(), cartID); !errors.Is(err, ErrCartNotFound) {
			t.Fatalf("expected committed cart gone, got %v", err)
		}
	})

	t.Run("failed commit leaves the cart live for a retry", func(t *testing.T) {
		carts, settlements, repo, cartID := checkoutFixture(t)

		repo.EXPECT().
			Commit(gomock.Any(), gomock.Any(), "key-1").
			Return(entities.Transaction{}, errors.New("dynamodb timeout"))
		repo.EXPECT().
			Commit(gomock.Any(), gomock.Any(), "key-1").
			DoAndReturn(func(_ context.Context, tx entities.Transaction, _ string) (entities.Transaction, error) {
				return tx, nil
			})

		if _, err := settlements.Checkout(context.Background(), cartID, "key-1"); !errors.Is(err, ErrPersistenceUnavailable) {
			t.Fatalf("expected ErrPersistenceUnavailable, got %v", err)
		}
		if _, err := carts.Get(context.Background(), cartID); err != nil {
			t.Fatalf("expected cart still live, got %v", err)
		}

		// Retry with the identical key settles normally.
		if _, err := settlements.Checkout(context.Background(), cartID, "key-1"); err != nil {
			t.Fatalf("unexpected error on retry: %v", err)
		}
	})

	t.Run("blank key fails before the store and keeps the cart live", func(t *testing.T) {
		carts, settlements, _, cartID := checkoutFixture(t)

		if _, err := settlements.Checkout(context.Background(), cartID, "  "); !errors.Is(err, ErrInvalidIdempotencyKey) {
			t.Fatalf("expected ErrInvalidIdempotencyKey, got %v", err)
		}
		if _, err := carts.Get(context.Background(), cartID); err != nil {
			t.Fatalf("expected cart still live, got %v", err)
		}
	})

	t.Run("unknown cart", func(t *testing.T) {
		_, settlements, _, _ := checkoutFixture(t)

		if _, err := settlements.Checkout(context.Background(), "missing", "key-1"); !errors.Is(err, ErrCartNotFound) {
			t.Fatalf("expected ErrCartNotFound, got %v", err)
		}
	})

	t.Run("empty cart cannot be checked out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		settlementRepo := mock_interfaces.NewMockISettlementRepository(ctrl)
		carts := NewCartUseCase(NewCustomerUseCase(mock_interfaces.NewMockICustomerRepository(ctrl)), mock_interfaces.NewMockICategoryRepository(ctrl))
		settlements := NewSettlementUseCase(carts, settlementRepo)

		cart, err := carts.Create(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := settlements.Checkout(context.Background(), cart.ID, "key-1"); !errors.Is(err, entities.ErrNoCustomerBound) {
			t.Fatalf("expected ErrNoCustomerBound, got %v", err)
		}
	})
}
