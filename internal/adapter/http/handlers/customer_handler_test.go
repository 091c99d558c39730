package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"banksampah/internal/adapter/http/dto/response"
	"banksampah/internal/adapter/http/handlers/mocks"
	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newCustomerRouter(t *testing.T) (*gin.Engine, *mocks.MockICustomerUseCase, *mocks.MockITransactionUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	customers := mocks.NewMockICustomerUseCase(ctrl)
	transactions := mocks.NewMockITransactionUseCase(ctrl)
	h := NewCustomerHandler(customers, transactions)

	r := gin.New()
	r.POST("/v1/customers/resolve", h.Resolve)
	r.GET("/v1/customers/:customer_id", h.GetByID)
	r.GET("/v1/customers/:customer_id/qrcard", h.QRCard)
	r.GET("/v1/customers/:customer_id/transactions", h.ListTransactions)
	return r, customers, transactions
}

func TestCustomerHandler_Resolve(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		r, _, _ := newCustomerRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/customers/resolve", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown identifier", func(t *testing.T) {
		r, customers, _ := newCustomerRouter(t)

		customers.EXPECT().Resolve(gomock.Any(), "ghost").Return(entities.Customer{}, usecase.ErrCustomerNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/customers/resolve", bytes.NewBufferString(`{"identifier":"ghost"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if code := decodeHTTPError(t, w.Body); code != "CUSTOMER_NOT_FOUND" {
			t.Fatalf("expected CUSTOMER_NOT_FOUND, got %s", code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, customers, _ := newCustomerRouter(t)

		customers.EXPECT().Resolve(gomock.Any(), "n-1").Return(entities.Customer{ID: "n-1", Name: "Budi", Balance: 10000}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/customers/resolve", bytes.NewBufferString(`{"identifier":"n-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp response.CustomerResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp.ID != "n-1" || resp.Balance != 10000 {
			t.Fatalf("unexpected body: %+v", resp)
		}
	})
}

func TestCustomerHandler_QRCard(t *testing.T) {
	t.Run("serves the png", func(t *testing.T) {
		r, customers, _ := newCustomerRouter(t)

		png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
		customers.EXPECT().QRCardPNG(gomock.Any(), "n-1").Return(png, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/customers/n-1/qrcard", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Fatalf("expected image/png, got %s", ct)
		}
		if !bytes.Equal(w.Body.Bytes(), png) {
			t.Fatalf("unexpected body: %v", w.Body.Bytes())
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		r, customers, _ := newCustomerRouter(t)

		customers.EXPECT().QRCardPNG(gomock.Any(), "ghost").Return(nil, usecase.ErrCustomerNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/customers/ghost/qrcard", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestCustomerHandler_ListTransactions(t *testing.T) {
	r, _, transactions := newCustomerRouter(t)

	now := time.Now().UTC()
	transactions.EXPECT().ListByCustomer(gomock.Any(), "n-1").Return([]entities.Transaction{
		{ID: "tx-1", CustomerID: "n-1", CreatedAt: now, Kind: entities.TransactionKindDeposit, TotalWeightKg: 4.5, TotalAmount: 8250},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/customers/n-1/transactions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []response.TransactionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "tx-1" || resp[0].Kind != "setor" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}
