package interfaces

import (
	"context"

	"banksampah/internal/domain/entities"
)

// ICategoryRepository abstracts read-only access to the waste-category
// catalog. Catalog editing happens in an external management flow.
type ICategoryRepository interface {
	List(ctx context.Context) ([]entities.WasteCategory, error)
}
