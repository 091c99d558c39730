package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"banksampah/internal/adapter/http/dto/request"
	"banksampah/internal/adapter/http/dto/response"
	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase"
	"banksampah/pkg"

	"github.com/gin-gonic/gin"
)

// CartHandler drives the deposit counter flow: assemble a cart, bind the
// customer, then settle it through checkout.
type CartHandler struct {
	carts      usecase.ICartUseCase
	settlement usecase.ISettlementUseCase
}

func NewCartHandler(carts usecase.ICartUseCase, settlement usecase.ISettlementUseCase) *CartHandler {
	return &CartHandler{carts: carts, settlement: settlement}
}

// Create opens a fresh cart for an operator session.
func (h *CartHandler) Create(c *gin.Context) {
	cart, err := h.carts.Create(c.Request.Context())
	if err != nil {
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromCart(cart))
}

// Get returns the cart with its items and freshly computed totals.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCart(cart))
}

// BindCustomer resolves the posted identifier and binds the customer.
func (h *CartHandler) BindCustomer(c *gin.Context) {
	cartID := c.Param("cart_id")

	var req request.BindCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	customer, err := h.carts.BindCustomer(c.Request.Context(), cartID, req.ResolveIdentifier())
	if err != nil {
		log.Printf("[cart][handler] bind failed cart_id=%s err=%v", cartID, err)
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCustomer(customer))
}

// AddItem weighs a category into the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID := c.Param("cart_id")

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	weight, err := req.ResolveWeight()
	if err == nil {
		var item entities.LineItem
		item, err = h.carts.AddItem(c.Request.Context(), cartID, req.CategoryID, weight)
		if err == nil {
			c.JSON(http.StatusCreated, response.FromLineItem(item))
			return
		}
	}

	log.Printf("[cart][handler] add item failed cart_id=%s category_id=%s err=%v", cartID, req.CategoryID, err)
	appErr := mapCartError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// RemoveItem drops one line item; remaining items keep their order.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	err := h.carts.RemoveItem(c.Request.Context(), c.Param("cart_id"), c.Param("item_id"))
	if err != nil {
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

// Checkout settles the cart. The Idempotency-Key header makes retries after
// ambiguous outcomes safe: resubmitting the same key returns the originally
// committed transaction instead of crediting twice.
func (h *CartHandler) Checkout(c *gin.Context) {
	cartID := c.Param("cart_id")
	idempotencyKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))

	tx, err := h.settlement.Checkout(c.Request.Context(), cartID, idempotencyKey)
	if err != nil {
		log.Printf("[cart][handler] checkout failed cart_id=%s idempotency_key=%s err=%v", cartID, idempotencyKey, err)
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[cart][handler] checkout success cart_id=%s transaction_id=%s total_amount=%v", cartID, tx.ID, tx.TotalAmount)

	c.JSON(http.StatusCreated, response.FromTransaction(tx))
}

// Discard abandons the cart without settling it.
func (h *CartHandler) Discard(c *gin.Context) {
	if err := h.carts.Discard(c.Request.Context(), c.Param("cart_id")); err != nil {
		appErr := mapCartError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

func mapCartError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrCartNotFound):
		return pkg.NewDomainErrorSimple("CART_NOT_FOUND", "Cart not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCategoryNotFound):
		return pkg.NewDomainErrorSimple("CATEGORY_NOT_FOUND", "Waste category not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		return pkg.NewDomainErrorSimple("CATALOG_UNAVAILABLE", "Waste category catalog unavailable, try again later", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrInvalidIdentifier):
		return pkg.NewDomainErrorSimple("INVALID_IDENTIFIER", "Customer identifier must not be empty", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not registered", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidWeight):
		return pkg.NewDomainErrorSimple("INVALID_WEIGHT", "Weight must be a positive number", http.StatusBadRequest)
	case errors.Is(err, entities.ErrCustomerAlreadyBound):
		return pkg.NewDomainErrorSimple("CUSTOMER_ALREADY_BOUND", "A different customer is already bound to this cart", http.StatusConflict)
	case errors.Is(err, entities.ErrLineItemNotFound):
		return pkg.NewDomainErrorSimple("LINE_ITEM_NOT_FOUND", "Line item not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrNoCustomerBound):
		return pkg.NewDomainErrorSimple("NO_CUSTOMER_BOUND", "Bind a customer before checkout", http.StatusBadRequest)
	case errors.Is(err, entities.ErrEmptyCart):
		return pkg.NewDomainErrorSimple("EMPTY_CART", "Add at least one item before checkout", http.StatusBadRequest)
	case errors.Is(err, entities.ErrCartClosed):
		return pkg.NewDomainErrorSimple("CART_CLOSED", "Cart already committed or aborted", http.StatusConflict)
	case errors.Is(err, usecase.ErrCheckoutInProgress):
		return pkg.NewDomainErrorSimple("CHECKOUT_IN_PROGRESS", "A checkout is already in progress for this cart", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidIdempotencyKey):
		return pkg.NewDomainErrorSimple("IDEMPOTENCY_KEY_REQUIRED", "Provide an Idempotency-Key header", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCommitConflict):
		return pkg.NewDomainErrorSimple("COMMIT_CONFLICT", "Idempotency key already used with a different payload", http.StatusConflict)
	case errors.Is(err, usecase.ErrCustomerVanished):
		return pkg.NewDomainErrorSimple("CUSTOMER_VANISHED", "Bound customer no longer exists, rebuild the cart", http.StatusConflict)
	case errors.Is(err, usecase.ErrPersistenceUnavailable):
		return pkg.NewDomainErrorSimple("PERSISTENCE_UNAVAILABLE", "Settlement storage unavailable, retry with the same Idempotency-Key", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
