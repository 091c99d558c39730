package handlers

import (
	"errors"
	"log"
	"net/http"

	"banksampah/internal/adapter/http/dto/request"
	"banksampah/internal/adapter/http/dto/response"
	"banksampah/internal/usecase"
	"banksampah/pkg"

	"github.com/gin-gonic/gin"
)

// CustomerHandler resolves customer identifiers and serves member QR cards.
type CustomerHandler struct {
	customers    usecase.ICustomerUseCase
	transactions usecase.ITransactionUseCase
}

func NewCustomerHandler(customers usecase.ICustomerUseCase, transactions usecase.ITransactionUseCase) *CustomerHandler {
	return &CustomerHandler{customers: customers, transactions: transactions}
}

// Resolve looks a customer up from a typed or QR-decoded identifier.
func (h *CustomerHandler) Resolve(c *gin.Context) {
	var req request.BindCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	customer, err := h.customers.Resolve(c.Request.Context(), req.ResolveIdentifier())
	if err != nil {
		log.Printf("[customer][handler] resolve failed identifier=%q err=%v", req.Identifier, err)
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCustomer(customer))
}

// GetByID returns one customer record.
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customer, err := h.customers.Resolve(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCustomer(customer))
}

// QRCard renders the customer's member card QR as a PNG. Scanning it at the
// counter feeds the encoded id straight back into Resolve.
func (h *CustomerHandler) QRCard(c *gin.Context) {
	png, err := h.customers.QRCardPNG(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		log.Printf("[customer][handler] qr card failed customer_id=%s err=%v", c.Param("customer_id"), err)
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// ListTransactions returns the customer's committed deposit history.
func (h *CustomerHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.transactions.ListByCustomer(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		appErr := mapCustomerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTransactions(transactions))
}

func mapCustomerError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidIdentifier):
		return pkg.NewDomainErrorSimple("INVALID_IDENTIFIER", "Customer identifier must not be empty", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not registered", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
