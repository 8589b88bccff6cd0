// Package dynamo wraps a DynamoDB table behind a paginated query/scan client
// and a MoodStore built on top of it.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

// Item is one raw table record.
type Item = map[string]types.AttributeValue

// API is the subset of the DynamoDB client the store uses. Tests inject a
// fake; production uses *dynamodb.Client.
type API interface {
	PutItem(ctx context.Context, in *ddb.PutItemInput, opts ...func(*ddb.Options)) (*ddb.PutItemOutput, error)
	Query(ctx context.Context, in *ddb.QueryInput, opts ...func(*ddb.Options)) (*ddb.QueryOutput, error)
	Scan(ctx context.Context, in *ddb.ScanInput, opts ...func(*ddb.Options)) (*ddb.ScanOutput, error)
}

// Client hides cursor-based pagination behind lazy iterators over one table.
type Client struct {
	api   API
	table string
}

// NewClient creates a client against the real DynamoDB service.
func NewClient(ctx context.Context, table, region string) (*Client, error) {
	if table == "" {
		return nil, fmt.Errorf("table name is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &Client{api: ddb.NewFromConfig(cfg), table: table}, nil
}

// NewClientWithAPI creates a client over an already-built API implementation.
func NewClientWithAPI(api API, table string) *Client {
	return &Client{api: api, table: table}
}

// PutItem writes one record unconditionally (upsert by primary key). Errors
// are wrapped as domain.ErrStoreUnavailable and never retried here.
func (c *Client) PutItem(ctx context.Context, item Item) error {
	_, err := c.api.PutItem(ctx, &ddb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamo put item: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// QueryInput describes a key-range query. Limit, if positive, bounds the
// page size passed to the store — not the total number of yielded items.
type QueryInput struct {
	KeyConditionExpression    string
	ExpressionAttributeValues map[string]types.AttributeValue
	IndexName                 string
	FilterExpression          string
	Limit                     int32
	ScanIndexForward          *bool
}

// Query issues one request per page and exposes the result as a lazy
// iterator. Pagination continues until the store stops returning a
// continuation cursor, even when Limit is set.
func (c *Client) Query(ctx context.Context, in QueryInput) *Iterator {
	return newIterator(ctx, func(ctx context.Context, startKey Item) ([]Item, Item, error) {
		qi := &ddb.QueryInput{
			TableName:                 aws.String(c.table),
			KeyConditionExpression:    aws.String(in.KeyConditionExpression),
			ExpressionAttributeValues: in.ExpressionAttributeValues,
		}
		if len(startKey) > 0 {
			qi.ExclusiveStartKey = startKey
		}
		if in.IndexName != "" {
			qi.IndexName = aws.String(in.IndexName)
		}
		if in.FilterExpression != "" {
			qi.FilterExpression = aws.String(in.FilterExpression)
		}
		if in.Limit > 0 {
			qi.Limit = aws.Int32(in.Limit)
		}
		if in.ScanIndexForward != nil {
			qi.ScanIndexForward = in.ScanIndexForward
		}
		out, err := c.api.Query(ctx, qi)
		if err != nil {
			return nil, nil, fmt.Errorf("dynamo query: %w: %w", domain.ErrStoreUnavailable, err)
		}
		return out.Items, out.LastEvaluatedKey, nil
	})
}

// ScanInput describes a full-table (or index) scan. Limit bounds page size
// only, as in QueryInput.
type ScanInput struct {
	ProjectionExpression      string
	FilterExpression          string
	ExpressionAttributeValues map[string]types.AttributeValue
	Limit                     int32
	IndexName                 string
}

// Scan walks the whole table with the same pagination discipline as Query.
func (c *Client) Scan(ctx context.Context, in ScanInput) *Iterator {
	return newIterator(ctx, func(ctx context.Context, startKey Item) ([]Item, Item, error) {
		si := &ddb.ScanInput{
			TableName: aws.String(c.table),
		}
		if len(startKey) > 0 {
			si.ExclusiveStartKey = startKey
		}
		if in.ProjectionExpression != "" {
			si.ProjectionExpression = aws.String(in.ProjectionExpression)
		}
		if in.FilterExpression != "" {
			si.FilterExpression = aws.String(in.FilterExpression)
		}
		if len(in.ExpressionAttributeValues) > 0 {
			si.ExpressionAttributeValues = in.ExpressionAttributeValues
		}
		if in.Limit > 0 {
			si.Limit = aws.Int32(in.Limit)
		}
		if in.IndexName != "" {
			si.IndexName = aws.String(in.IndexName)
		}
		out, err := c.api.Scan(ctx, si)
		if err != nil {
			return nil, nil, fmt.Errorf("dynamo scan: %w: %w", domain.ErrStoreUnavailable, err)
		}
		return out.Items, out.LastEvaluatedKey, nil
	})
}
