package entities

import "errors"

// Cart input errors. None of these touch persistent state; the caller fixes
// the input and retries the same operation.
var (
	ErrInvalidWeight        = errors.New("weight must be a positive number")
	ErrCustomerAlreadyBound = errors.New("a different customer is already bound to a non-empty cart")
	ErrLineItemNotFound     = errors.New("line item not found")
	ErrNoCustomerBound      = errors.New("no customer bound to cart")
	ErrEmptyCart            = errors.New("cart has no line items")
	ErrCartClosed           = errors.New("cart already committed or aborted")
)
