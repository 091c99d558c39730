package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"banksampah/internal/usecase/interfaces"

	"banksampah/internal/domain/entities"
)

var ErrCatalogUnavailable = errors.New("waste category catalog unavailable")

// ICatalogUseCase exposes the read-only waste-category catalog used to
// populate the deposit counter. Re-reading mid-session is allowed; it never
// touches price snapshots already captured in a cart.
type ICatalogUseCase interface {
	ListCategories(ctx context.Context) ([]entities.WasteCategory, error)
}

type CatalogUseCase struct {
	repo interfaces.ICategoryRepository
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(repo interfaces.ICategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

func (u *CatalogUseCase) ListCategories(ctx context.Context) ([]entities.WasteCategory, error) {
	categories, err := u.repo.List(ctx)
	if err != nil {
		log.Printf("[catalog][usecase] list failed err=%v", err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return categories, nil
}
