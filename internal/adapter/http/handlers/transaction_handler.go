package handlers

import (
	"errors"
	"net/http"

	"banksampah/internal/adapter/http/dto/response"
	"banksampah/internal/usecase"
	"banksampah/pkg"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves committed settlement records.
type TransactionHandler struct {
	usecase usecase.ITransactionUseCase
}

func NewTransactionHandler(uc usecase.ITransactionUseCase) *TransactionHandler {
	return &TransactionHandler{usecase: uc}
}

// GetByID returns one immutable settlement record.
func (h *TransactionHandler) GetByID(c *gin.Context) {
	tx, err := h.usecase.GetByID(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTransaction(tx))
}

func mapTransactionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTransactionID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_FOUND", "Transaction not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
