package routes

import (
	"log"
	"strconv"
	"strings"

	_ "banksampah/docs" // This will be auto-generated
	"banksampah/internal/adapter/http/handlers"
	"banksampah/internal/adapter/persistence/memory"
	repository2 "banksampah/internal/adapter/persistence/repository"
	"banksampah/internal/infrastructure/database"
	"banksampah/internal/usecase"
	"banksampah/internal/usecase/interfaces"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	customerRepo, categoryRepo, transactionRepo, settlementRepo := buildRepositories()

	catalogUseCase := usecase.NewCatalogUseCase(categoryRepo)
	customerUseCase := usecase.NewCustomerUseCase(customerRepo)
	cartUseCase := usecase.NewCartUseCase(customerUseCase, categoryRepo)
	settlementUseCase := usecase.NewSettlementUseCase(cartUseCase, settlementRepo)
	transactionUseCase := usecase.NewTransactionUseCase(transactionRepo)

	catalogHandler := handlers.NewCatalogHandler(catalogUseCase)
	customerHandler := handlers.NewCustomerHandler(customerUseCase, transactionUseCase)
	cartHandler := handlers.NewCartHandler(cartUseCase, settlementUseCase)
	transactionHandler := handlers.NewTransactionHandler(transactionUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addDepositRoutes(v1, catalogHandler, customerHandler, cartHandler, transactionHandler)
}

// buildRepositories selects the storage backend. DynamoDB is the default;
// STORAGE_BACKEND=memory runs everything in process for local development.
func buildRepositories() (interfaces.ICustomerRepository, interfaces.ICategoryRepository, interfaces.ITransactionRepository, interfaces.ISettlementRepository) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_BACKEND")))
	if backend == "memory" {
		log.Printf("[routes] using in-memory storage backend")
		store := memory.NewStore()
		return store.Customers(), store.Categories(), store.Transactions(), store.Settlements()
	}

	ddb := database.ConnectDynamoDB()
	return repository2.NewCustomerDynamoRepository(ddb),
		repository2.NewCategoryDynamoRepository(ddb),
		repository2.NewTransactionDynamoRepository(ddb),
		repository2.NewSettlementDynamoRepository(ddb)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
