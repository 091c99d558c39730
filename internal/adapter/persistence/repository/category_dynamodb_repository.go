package repository

import (
	"context"

	"banksampah/internal/domain/entities"
	"banksampah/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultCategoriesTableName = "waste_categories"

type categoryItem struct {
	ID         string  `dynamodbav:"id"`
	Name       string  `dynamodbav:"name"`
	PricePerKg float64 `dynamodbav:"price_per_kg"`
	ImageURL   string  `dynamodbav:"image_url,omitempty"`
}

// CategoryDynamoRepository reads the waste-category catalog from DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The catalog is small (a counter screen's worth of categories), so List is a
// plain Scan.
type CategoryDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICategoryRepository = (*CategoryDynamoRepository)(nil)

func NewCategoryDynamoRepository(ddb *dynamodb.Client) *CategoryDynamoRepository {
	return &CategoryDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CATEGORIES_TABLE", defaultCategoriesTableName),
	}
}

func (r *CategoryDynamoRepository) List(ctx context.Context) ([]entities.WasteCategory, error) {
	categories := make([]entities.WasteCategory, 0)

	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it categoryItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			categories = append(categories, entities.WasteCategory{
				ID:         it.ID,
				Name:       it.Name,
				PricePerKg: it.PricePerKg,
				ImageURL:   it.ImageURL,
			})
		}
	}
	return categories, nil
}
