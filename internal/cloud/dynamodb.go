package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ANIKETSHETTY47/microgrid-estimates/internal/report"
)

type dynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDBSink keeps the latest summary per microgrid. The table key is
// microgridId; each put replaces the previous snapshot.
type DynamoDBSink struct {
	api   dynamoAPI
	table string
}

func NewDynamoDBSink(cfg aws.Config, table string) *DynamoDBSink {
	return &DynamoDBSink{api: dynamodb.NewFromConfig(cfg), table: table}
}

func (c *DynamoDBSink) Name() string { return "dynamodb" }

func (c *DynamoDBSink) Publish(ctx context.Context, s *report.Summary) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	item["lastPeriod"] = &types.AttributeValueMemberS{Value: s.LastPeriod.String()}

	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}
	return nil
}
