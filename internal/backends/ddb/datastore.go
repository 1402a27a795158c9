package ddb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"islandtracker/internal/types"
)

// DataStore keeps cache entries and settings in one DynamoDB table.
// No DynamoDB TTL attribute is written: expired entries stay readable for offline use.
type DataStore struct {
	table string
	cli   *dynamodb.Client
}

type cacheItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	CacheKey   string `dynamodbav:"cache_key"`
	Value      []byte `dynamodbav:"value"`
	Compressed bool   `dynamodbav:"compressed"`
	ExpiresAt  int64  `dynamodbav:"expires_at"`
}

type settingsItem struct {
	PK            string `dynamodbav:"PK"`
	SK            string `dynamodbav:"SK"`
	HasRegistered bool   `dynamodbav:"has_registered"`
}

func NewDataStore(ctx context.Context, table string, cli *dynamodb.Client) (*DataStore, error) {
	if err := createTableIfNotExists(ctx, cli, table); err != nil {
		return nil, err
	}
	return &DataStore{table: table, cli: cli}, nil
}

func (s *DataStore) Load(ctx context.Context, key string) (*types.CacheEntry, error) {
	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.table,
		ConsistentRead: awsBool(true),
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkCache(key)},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skEntry()},
		},
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}
	var it cacheItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}
	return &types.CacheEntry{
		Key:        it.CacheKey,
		Value:      it.Value,
		Compressed: it.Compressed,
		ExpiresAt:  time.UnixMilli(it.ExpiresAt).UTC(),
	}, nil
}

func (s *DataStore) Save(ctx context.Context, entry types.CacheEntry) error {
	av, err := attributevalue.MarshalMap(cacheItem{
		PK:         pkCache(entry.Key),
		SK:         skEntry(),
		CacheKey:   entry.Key,
		Value:      entry.Value,
		Compressed: entry.Compressed,
		ExpiresAt:  entry.ExpiresAt.UTC().UnixMilli(),
	})
	if err != nil {
		return err
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      av,
	})
	return err
}

// ClearAll deletes every cache item. The settings item is kept.
func (s *DataStore) ClearAll(ctx context.Context) error {
	p := dynamodb.NewScanPaginator(s.cli, &dynamodb.ScanInput{
		TableName:        &s.table,
		FilterExpression: awsString("begins_with(PK, :pk)"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: SCache + "#"},
		},
		ProjectionExpression: awsString("PK, SK"),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, item := range page.Items {
			_, err := s.cli.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: &s.table,
				Key: map[string]ddbTypes.AttributeValue{
					"PK": item["PK"],
					"SK": item["SK"],
				},
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *DataStore) HasRegistered(ctx context.Context) (bool, error) {
	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.table,
		ConsistentRead: awsBool(true),
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkSettings()},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skRegistration()},
		},
	})
	if err != nil {
		return false, err
	}
	if out.Item == nil {
		return false, nil
	}
	var it settingsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return false, err
	}
	return it.HasRegistered, nil
}

func (s *DataStore) SetRegistered(ctx context.Context) error {
	av, err := attributevalue.MarshalMap(settingsItem{
		PK:            pkSettings(),
		SK:            skRegistration(),
		HasRegistered: true,
	})
	if err != nil {
		return err
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      av,
	})
	return err
}

// Close is a no-op; the SDK client holds no connection to release.
func (s *DataStore) Close() error { return nil }

func awsBool(b bool) *bool       { return &b }
func awsString(s string) *string { return &s }
