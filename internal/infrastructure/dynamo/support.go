package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-identity-api/internal/domain"
)

// SupportMessageRepo persists support messages submitted by users.
type SupportMessageRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSupportMessageRepo(client *dynamodb.Client, tableName string) *SupportMessageRepo {
	return &SupportMessageRepo{client: client, tableName: tableName}
}

func (r *SupportMessageRepo) Put(ctx context.Context, m *domain.SupportMessage) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal support message: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}
