package entities

// LineItem is one weighed waste entry in a cart.
//
// CategoryName and PricePerKg are snapshots taken when the item was added;
// they stay fixed even if the catalog changes afterwards. The subtotal is
// always derived from weight and the price snapshot, never stored separately
// inside the aggregate.
type LineItem struct {
	ID           string  `json:"id"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	WeightKg     float64 `json:"weight_kg"`
	PricePerKg   float64 `json:"price_per_kg"`
}

func (i LineItem) Subtotal() float64 {
	return i.WeightKg * i.PricePerKg
}
