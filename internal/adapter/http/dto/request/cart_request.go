package request

import (
	"encoding/json"
	"strings"

	"banksampah/internal/domain/entities"
)

// BindCustomerRequest carries the raw identifier for cart binding and
// customer resolution. The value is either typed at the counter or produced
// by the QR-decode step; both arrive here as the same opaque string.
type BindCustomerRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

func (r BindCustomerRequest) ResolveIdentifier() string {
	return strings.TrimSpace(r.Identifier)
}

// AddItemRequest weighs one waste category into the cart. The weight arrives
// as a JSON number; semantic validation (positive, finite) happens in the
// cart aggregate.
type AddItemRequest struct {
	CategoryID string      `json:"category_id" binding:"required"`
	WeightKg   json.Number `json:"weight_kg" binding:"required"`
}

func (r AddItemRequest) ResolveWeight() (float64, error) {
	weight, err := r.WeightKg.Float64()
	if err != nil {
		return 0, entities.ErrInvalidWeight
	}
	return weight, nil
}
