package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"banksampah/internal/domain/entities"
	mock_interfaces "banksampah/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCustomerUseCase_Resolve(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		u := NewCustomerUseCase(repo)

		repo.EXPECT().
			GetByID(gomock.Any(), "n-1").
			Return(entities.Customer{ID: "n-1", Name: "Budi", Balance: 10000}, nil)

		customer, err := u.Resolve(context.Background(), "n-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if customer.Name != "Budi" || customer.Balance != 10000 {
			t.Fatalf("unexpected customer: %+v", customer)
		}
	})

	t.Run("identifier is trimmed before lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		u := NewCustomerUseCase(repo)

		repo.EXPECT().
			GetByID(gomock.Any(), "n-1").
			Return(entities.Customer{ID: "n-1", Name: "Budi"}, nil)

		if _, err := u.Resolve(context.Background(), "  n-1\n"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("blank identifier never reaches the directory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		u := NewCustomerUseCase(repo)

		for _, raw := range []string{"", "   ", "\t\n"} {
			if _, err := u.Resolve(context.Background(), raw); !errors.Is(err, ErrInvalidIdentifier) {
				t.Fatalf("raw %q: expected ErrInvalidIdentifier, got %v", raw, err)
			}
		}
	})

	t.Run("unknown identifier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		u := NewCustomerUseCase(repo)

		repo.EXPECT().
			GetByID(gomock.Any(), "ghost").
			Return(entities.Customer{}, nil)

		if _, err := u.Resolve(context.Background(), "ghost"); !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})

	t.Run("directory failure passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		u := NewCustomerUseCase(repo)

		lookupErr := errors.New("dynamodb timeout")
		repo.EXPECT().
			GetByID(gomock.Any(), "n-1").
			Return(entities.Customer{}, lookupErr)

		if _, err := u.Resolve(context.Background(), "n-1"); !errors.Is(err, lookupErr) {
			t.Fatalf("expected lookup error, got %v", err)
		}
	})
}

func TestCustomerUseCase_ResolveNext(t *testing.T) {
	t.Run("scanned identifier resolves like a typed one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		src := mock_interfaces.NewMockIIdentifierSource(ctrl)
		u := NewCustomerUseCase(repo)

		src.EXPECT().Next(gomock.Any()).Return("n-1", nil)
		repo.EXPECT().
			GetByID(gomock.Any(), "n-1").
			Return(entities.Customer{ID: "n-1", Name: "Budi"}, nil)

		customer, err := u.ResolveNext(context.Background(), src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if customer.ID != "n-1" {
			t.Fatalf("unexpected customer: %+v", customer)
		}
	})

	t.Run("source failure short-circuits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		src := mock_interfaces.NewMockIIdentifierSource(ctrl)
		u := NewCustomerUseCase(repo)

		srcErr := errors.New("scanner offline")
		src.EXPECT().Next(gomock.Any()).Return("", srcErr)

		if _, err := u.ResolveNext(context.Background(), src); !errors.Is(err, srcErr) {
			t.Fatalf("expected source error, got %v", err)
		}
	})
}

func TestCustomerUseCase_QRCardPNG(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}

	t.Run("renders a png for an existing customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		u := NewCustomerUseCase(repo)

		repo.EXPECT().
			GetByID(gomock.Any(), "n-1").
			Return(entities.Customer{ID: "n-1", Name: "Budi"}, nil)

		png, err := u.QRCardPNG(context.Background(), "n-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(png, pngMagic) {
			t.Fatalf("expected png bytes, got prefix %v", png[:min(len(png), 4)])
		}
	})

	t.Run("unknown customer gets no card", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		u := NewCustomerUseCase(repo)

		repo.EXPECT().
			GetByID(gomock.Any(), "ghost").
			Return(entities.Customer{}, nil)

		if _, err := u.QRCardPNG(context.Background(), "ghost"); !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})
}
