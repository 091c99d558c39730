package repository

import (
	"context"
	"errors"
	"time"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCustomersTableName = "customers"
	creditGuardIDPrefix       = "credit#"
)

type customerItem struct {
	ID      string  `dynamodbav:"id"`
	Name    string  `dynamodbav:"name"`
	Balance float64 `dynamodbav:"balance"`
}

// CustomerDynamoRepository reads customers from DynamoDB and performs the
// atomic balance credit.
//
// Table requirements:
//   - PK: id (string)
//
// Balance is stored as a number attribute so the credit can be an ADD update
// on the server side instead of a read-then-write.
type CustomerDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb *dynamodb.Client) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName),
	}
}

func (r *CustomerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Customer{}, nil
	}

	var it customerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Customer{}, err
	}
	return fromCustomerItem(it), nil
}

// CreditBalance increments the stored balance by amount, at most once per
// idempotency key. The increment and a guard-item write (same table as the
// customer, id "credit#<key>") run in one TransactWriteItems; a duplicate key
// trips the guard condition, in which case the credit already happened and the
// current customer is returned unchanged.
func (r *CustomerDynamoRepository) CreditBalance(ctx context.Context, id string, amount float64, idempotencyKey string) (entities.Customer, error) {
	guard := map[string]types.AttributeValue{
		"id":          &types.AttributeValueMemberS{Value: creditGuardIDPrefix + idempotencyKey},
		"customer_id": &types.AttributeValueMemberS{Value: id},
		"amount":      &types.AttributeValueMemberN{Value: floatToString(amount)},
		"credited_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: id},
					},
					UpdateExpression:    aws.String("ADD #balance :amount"),
					ConditionExpression: aws.String("attribute_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#balance": "balance",
						"#id":      "id",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": &types.AttributeValueMemberN{Value: floatToString(amount)},
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                guard,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			if reasonFailed(canceled, 0) {
				// Customer row is gone.
				return entities.Customer{}, nil
			}
			if reasonFailed(canceled, 1) {
				// Key already applied; report the current state.
				return r.GetByID(ctx, id)
			}
		}
		return entities.Customer{}, err
	}

	return r.GetByID(ctx, id)
}

func reasonFailed(canceled *types.TransactionCanceledException, idx int) bool {
	if canceled == nil || idx >= len(canceled.CancellationReasons) {
		return false
	}
	code := canceled.CancellationReasons[idx].Code
	return code != nil && *code == "ConditionalCheckFailed"
}

func fromCustomerItem(it customerItem) entities.Customer {
	return entities.Customer{
		ID:      it.ID,
		Name:    it.Name,
		Balance: it.Balance,
	}
}
