package routes

import (
	"banksampah/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCategories   = "/categories"
	PathCustomers    = "/customers"
	PathCarts        = "/carts"
	PathTransactions = "/transactions"
)

func addDepositRoutes(rg *gin.RouterGroup, catalogHandler *handlers.CatalogHandler, customerHandler *handlers.CustomerHandler, cartHandler *handlers.CartHandler, transactionHandler *handlers.TransactionHandler) {
	rg.GET(PathCategories, catalogHandler.ListCategories)

	customers := rg.Group(PathCustomers)
	{
		customers.POST("/resolve", customerHandler.Resolve)
		customers.GET("/:customer_id", customerHandler.GetByID)
		customers.GET("/:customer_id/qrcard", customerHandler.QRCard)
		customers.GET("/:customer_id/transactions", customerHandler.ListTransactions)
	}

	carts := rg.Group(PathCarts)
	{
		carts.POST("", cartHandler.Create)
		carts.GET("/:cart_id", cartHandler.Get)
		carts.PUT("/:cart_id/customer", cartHandler.BindCustomer)
		carts.POST("/:cart_id/items", cartHandler.AddItem)
		carts.DELETE("/:cart_id/items/:item_id", cartHandler.RemoveItem)
		carts.POST("/:cart_id/checkout", cartHandler.Checkout)
		carts.DELETE("/:cart_id", cartHandler.Discard)
	}

	rg.GET(PathTransactions+"/:transaction_id", transactionHandler.GetByID)
}
