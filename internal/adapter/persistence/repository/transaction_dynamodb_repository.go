package repository

import (
	"context"
	"strings"
	"time"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTransactionsTableName = "transactions"
	transactionsCustomerIDIndex  = "customer_id-index"
	settlementGuardIDPrefix      = "idem#"
)

type transactionLineItem struct {
	ID           string  `dynamodbav:"id"`
	CategoryID   string  `dynamodbav:"category_id"`
	CategoryName string  `dynamodbav:"category_name"`
	WeightKg     float64 `dynamodbav:"weight_kg"`
	PricePerKg   float64 `dynamodbav:"price_per_kg"`
	Subtotal     float64 `dynamodbav:"subtotal"`
}

type transactionItem struct {
	ID             string                `dynamodbav:"id"`
	CustomerID     string                `dynamodbav:"customer_id"`
	CustomerName   string                `dynamodbav:"customer_name"`
	CreatedAt      string                `dynamodbav:"created_at"`
	Kind           string                `dynamodbav:"kind"`
	Items          []transactionLineItem `dynamodbav:"items"`
	TotalWeightKg  float64               `dynamodbav:"total_weight_kg"`
	TotalAmount    float64               `dynamodbav:"total_amount"`
	IdempotencyKey string                `dynamodbav:"idempotency_key,omitempty"`
}

// TransactionDynamoRepository reads committed settlement records from
// DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id)
//
// The same table also holds the settlement idempotency guard items (id
// "idem#<key>"); guards carry no customer_id attribute so they never show up
// on the GSI.
type TransactionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb *dynamodb.Client) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
	}
}

func (r *TransactionDynamoRepository) GetByID(ctx context.Context, id string) (entities.Transaction, error) {
	if strings.HasPrefix(id, settlementGuardIDPrefix) {
		return entities.Transaction{}, nil
	}

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	if len(out.Item) == 0 {
		return entities.Transaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Transaction{}, err
	}
	return fromTransactionItem(it), nil
}

func (r *TransactionDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Transaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(transactionsCustomerIDIndex),
		KeyConditionExpression: aws.String("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]entities.Transaction, 0, len(out.Items))
	for _, raw := range out.Items {
		var it transactionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		transactions = append(transactions, fromTransactionItem(it))
	}
	return transactions, nil
}

func toTransactionItem(tx entities.Transaction, idempotencyKey string) transactionItem {
	items := make([]transactionLineItem, 0, len(tx.Items))
	for _, item := range tx.Items {
		items = append(items, transactionLineItem{
			ID:           item.ID,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			WeightKg:     item.WeightKg,
			PricePerKg:   item.PricePerKg,
			Subtotal:     item.Subtotal(),
		})
	}
	return transactionItem{
		ID:             tx.ID,
		CustomerID:     tx.CustomerID,
		CustomerName:   tx.CustomerName,
		CreatedAt:      tx.CreatedAt.UTC().Format(time.RFC3339Nano),
		Kind:           string(tx.Kind),
		Items:          items,
		TotalWeightKg:  tx.TotalWeightKg,
		TotalAmount:    tx.TotalAmount,
		IdempotencyKey: idempotencyKey,
	}
}

func fromTransactionItem(it transactionItem) entities.Transaction {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	items := make([]entities.LineItem, 0, len(it.Items))
	for _, item := range it.Items {
		items = append(items, entities.LineItem{
			ID:           item.ID,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			WeightKg:     item.WeightKg,
			PricePerKg:   item.PricePerKg,
		})
	}
	return entities.Transaction{
		ID:            it.ID,
		CustomerID:    it.CustomerID,
		CustomerName:  it.CustomerName,
		CreatedAt:     createdAt,
		Kind:          entities.TransactionKind(it.Kind),
		Items:         items,
		TotalWeightKg: it.TotalWeightKg,
		TotalAmount:   it.TotalAmount,
	}
}
