package entities

// WasteCategory is a priced waste type selectable at the deposit counter.
//
// Storage model (DynamoDB):
//   - PK: id
//
// The catalog is owned by an external management flow and is read-only here.
// PricePerKg is snapshotted into a line item at the moment the item is added;
// later catalog edits never touch carts already in progress or committed
// transactions.
type WasteCategory struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PricePerKg float64 `json:"price_per_kg"`
	ImageURL   string  `json:"image_url,omitempty"`
}
