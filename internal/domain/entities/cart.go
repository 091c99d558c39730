package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Cart is the ephemeral per-operator aggregate assembled before settlement.
//
// Lifecycle: Empty -> CustomerBound -> Accumulating -> Ready (snapshot taken)
// -> Committed | Aborted. Committed and Aborted are terminal; the operator
// starts a fresh cart for the next deposit. Carts live in process memory only
// and are never persisted.
//
// A cart belongs to exactly one operator session, so the aggregate itself
// carries no locking; the registry that hands carts out serializes access.
type Cart struct {
	ID        string
	Customer  *Customer
	Items     []LineItem
	Committed bool
	Aborted   bool
	CreatedAt time.Time
}

// CartSnapshot is the frozen view handed to the settlement engine. Items is a
// copy; mutations to the live cart after the snapshot do not leak into it.
type CartSnapshot struct {
	CartID        string
	CustomerID    string
	CustomerName  string
	Items         []LineItem
	TotalWeightKg float64
	TotalAmount   float64
}

func NewCart() *Cart {
	return &Cart{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Cart) closed() bool {
	return c.Committed || c.Aborted
}

// BindCustomer sets the resolved customer. Re-binding the same customer is a
// no-op; re-targeting a cart that already holds items for someone else is
// rejected so a populated cart cannot silently switch accounts.
func (c *Cart) BindCustomer(customer Customer) error {
	if c.closed() {
		return ErrCartClosed
	}
	if c.Customer != nil && c.Customer.ID != customer.ID && len(c.Items) > 0 {
		return ErrCustomerAlreadyBound
	}
	c.Customer = &customer
	return nil
}

// AddItem appends a weighed entry, snapshotting the category name and price
// at this moment. Insertion order is preserved.
func (c *Cart) AddItem(category WasteCategory, weightKg float64) (LineItem, error) {
	if c.closed() {
		return LineItem{}, ErrCartClosed
	}
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return LineItem{}, ErrInvalidWeight
	}

	item := LineItem{
		ID:           uuid.NewString(),
		CategoryID:   category.ID,
		CategoryName: category.Name,
		WeightKg:     weightKg,
		PricePerKg:   category.PricePerKg,
	}
	c.Items = append(c.Items, item)
	return item, nil
}

// RemoveItem deletes one line item by id. Remaining items keep their order.
func (c *Cart) RemoveItem(lineItemID string) error {
	if c.closed() {
		return ErrCartClosed
	}
	for idx, item := range c.Items {
		if item.ID == lineItemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return nil
		}
	}
	return ErrLineItemNotFound
}

// Totals recomputes weight and amount from the current items on every call;
// nothing is cached across mutations.
func (c *Cart) Totals() (totalWeightKg, totalAmount float64) {
	for _, item := range c.Items {
		totalWeightKg += item.WeightKg
		totalAmount += item.Subtotal()
	}
	return totalWeightKg, totalAmount
}

// Snapshot freezes the cart for settlement.
func (c *Cart) Snapshot() (CartSnapshot, error) {
	if c.closed() {
		return CartSnapshot{}, ErrCartClosed
	}
	if c.Customer == nil {
		return CartSnapshot{}, ErrNoCustomerBound
	}
	if len(c.Items) == 0 {
		return CartSnapshot{}, ErrEmptyCart
	}

	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	totalWeight, totalAmount := c.Totals()

	return CartSnapshot{
		CartID:        c.ID,
		CustomerID:    c.Customer.ID,
		CustomerName:  c.Customer.Name,
		Items:         items,
		TotalWeightKg: totalWeight,
		TotalAmount:   totalAmount,
	}, nil
}

// MarkCommitted moves the cart to its terminal committed state.
func (c *Cart) MarkCommitted() {
	c.Committed = true
}

// MarkAborted moves the cart to its terminal aborted state.
func (c *Cart) MarkAborted() {
	c.Aborted = true
}
