package entities

// Customer is a registered waste-bank account holder (nasabah).
//
// Storage model (DynamoDB):
//   - PK: id
//
// Balance notes:
//   - Balance is the running credit in rupiah.
//   - It is only ever mutated through the settlement commit (or the
//     repository's atomic CreditBalance operation); this service never
//     creates or deletes customers.
type Customer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}
