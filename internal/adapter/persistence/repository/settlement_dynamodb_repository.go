package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type settlementGuardItem struct {
	ID            string `dynamodbav:"id"`
	TransactionID string `dynamodbav:"transaction_id"`
	Fingerprint   string `dynamodbav:"fingerprint"`
	CommittedAt   string `dynamodbav:"committed_at"`
}

// SettlementDynamoRepository performs the atomic settlement write: one
// TransactWriteItems holding the transaction put, the idempotency guard put
// and the customer balance ADD. DynamoDB applies all three or none, so a
// reader can never observe the record without the credit or the credit
// without the record.
//
// Positions inside the transact request matter: cancellation reasons come back
// index-aligned, which is how a duplicate key is told apart from a vanished
// customer.
type SettlementDynamoRepository struct {
	ddb               *dynamodb.Client
	transactionsTable string
	customersTable    string
	transactions      *TransactionDynamoRepository
}

var _ interfaces.ISettlementRepository = (*SettlementDynamoRepository)(nil)

func NewSettlementDynamoRepository(ddb *dynamodb.Client) *SettlementDynamoRepository {
	return &SettlementDynamoRepository{
		ddb:               ddb,
		transactionsTable: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
		customersTable:    getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName),
		transactions:      NewTransactionDynamoRepository(ddb),
	}
}

const (
	txPutIndex    = 0
	guardPutIndex = 1
	creditIndex   = 2
)

func (r *SettlementDynamoRepository) Commit(ctx context.Context, tx entities.Transaction, idempotencyKey string) (entities.Transaction, error) {
	txAV, err := attributevalue.MarshalMap(toTransactionItem(tx, idempotencyKey))
	if err != nil {
		return entities.Transaction{}, err
	}
	guardAV, err := attributevalue.MarshalMap(settlementGuardItem{
		ID:            settlementGuardIDPrefix + idempotencyKey,
		TransactionID: tx.ID,
		Fingerprint:   tx.Fingerprint(),
		CommittedAt:   time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return entities.Transaction{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.transactionsTable),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.transactionsTable),
					Item:                guardAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(r.customersTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: tx.CustomerID},
					},
					UpdateExpression:    aws.String("ADD #balance :amount"),
					ConditionExpression: aws.String("attribute_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#balance": "balance",
						"#id":      "id",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": &types.AttributeValueMemberN{Value: floatToString(tx.TotalAmount)},
					},
				},
			},
		},
	})
	if err == nil {
		return tx, nil
	}

	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return entities.Transaction{}, fmt.Errorf("%w: %v", interfaces.ErrStoreUnavailable, err)
	}

	switch {
	case reasonFailed(canceled, guardPutIndex):
		return r.resolveDuplicate(ctx, tx, idempotencyKey)
	case reasonFailed(canceled, creditIndex):
		return entities.Transaction{}, interfaces.ErrCustomerVanished
	default:
		return entities.Transaction{}, fmt.Errorf("%w: %v", interfaces.ErrStoreUnavailable, err)
	}
}

// resolveDuplicate handles a tripped idempotency guard: a matching fingerprint
// means this is a retry of an already-committed settlement, so the original
// record is returned; anything else is a key reuse.
func (r *SettlementDynamoRepository) resolveDuplicate(ctx context.Context, tx entities.Transaction, idempotencyKey string) (entities.Transaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.transactionsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: settlementGuardIDPrefix + idempotencyKey},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Transaction{}, fmt.Errorf("%w: %v", interfaces.ErrStoreUnavailable, err)
	}
	if len(out.Item) == 0 {
		// Guard vanished between the canceled write and this read.
		return entities.Transaction{}, fmt.Errorf("%w: idempotency guard missing after conflict", interfaces.ErrStoreUnavailable)
	}

	var guard settlementGuardItem
	if err := attributevalue.UnmarshalMap(out.Item, &guard); err != nil {
		return entities.Transaction{}, err
	}
	if guard.Fingerprint != tx.Fingerprint() {
		log.Printf("[settlement][repository] key reuse detected idempotency_key=%s original_transaction_id=%s", idempotencyKey, guard.TransactionID)
		return entities.Transaction{}, interfaces.ErrCommitConflict
	}

	original, err := r.transactions.GetByID(ctx, guard.TransactionID)
	if err != nil {
		return entities.Transaction{}, fmt.Errorf("%w: %v", interfaces.ErrStoreUnavailable, err)
	}
	if original.ID == "" {
		return entities.Transaction{}, fmt.Errorf("%w: committed transaction %s missing", interfaces.ErrStoreUnavailable, guard.TransactionID)
	}
	log.Printf("[settlement][repository] duplicate commit absorbed idempotency_key=%s transaction_id=%s", idempotencyKey, original.ID)
	return original, nil
}
