package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

const (
	SCache    = "CACHE"
	SSettings = "SETTINGS"
)

func pkCache(key string) string { return fmt.Sprintf("%s#%s", SCache, key) }
func skEntry() string            { return "ENTRY" }
func pkSettings() string         { return SSettings }
func skRegistration() string     { return "REGISTRATION" }

func createTableIfNotExists(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &table,
		AttributeDefinitions: []ddbTypes.AttributeDefinition{
			{AttributeName: awsString("PK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
			{AttributeName: awsString("SK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbTypes.KeySchemaElement{
			{AttributeName: awsString("PK"), KeyType: ddbTypes.KeyTypeHash},
			{AttributeName: awsString("SK"), KeyType: ddbTypes.KeyTypeRange},
		},
		BillingMode: ddbTypes.BillingModePayPerRequest,
	})
	if err != nil {
		var re *ddbTypes.ResourceInUseException
		if errors.As(err, &re) {
			return nil
		}
		return fmt.Errorf("create table %s: %w", table, err)
	}
	w := dynamodb.NewTableExistsWaiter(client)
	if err := w.Wait(ctx, &dynamodb.DescribeTableInput{TableName: &table}, 2*time.Minute); err != nil {
		return fmt.Errorf("wait for table %s: %w", table, err)
	}
	log.WithField("table", table).Info("created cache table")
	return nil
}
