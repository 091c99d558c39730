package usecase

import (
	"context"
	"errors"
	"testing"

	"banksampah/internal/domain/entities"
	mock_interfaces "banksampah/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCatalogUseCase_ListCategories(t *testing.T) {
	t.Run("returns the catalog in store order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICategoryRepository(ctrl)
		u := NewCatalogUseCase(repo)

		repo.EXPECT().List(gomock.Any()).Return([]entities.WasteCategory{
			{ID: "cat-paper", Name: "Kertas", PricePerKg: 2000},
			{ID: "cat-plastic", Name: "Plastik", PricePerKg: 1500},
		}, nil)

		categories, err := u.ListCategories(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(categories) != 2 || categories[0].ID != "cat-paper" {
			t.Fatalf("unexpected catalog: %+v", categories)
		}
	})

	t.Run("empty catalog is a valid answer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICategoryRepository(ctrl)
		u := NewCatalogUseCase(repo)

		repo.EXPECT().List(gomock.Any()).Return([]entities.WasteCategory{}, nil)

		categories, err := u.ListCategories(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(categories) != 0 {
			t.Fatalf("expected empty catalog, got %+v", categories)
		}
	})

	t.Run("store outage maps to catalog unavailability", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockICategoryRepository(ctrl)
		u := NewCatalogUseCase(repo)

		repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("dynamodb timeout"))

		if _, err := u.ListCategories(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
			t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
		}
	})
}
