package datastore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Schema of observation tables: one string partition key and one payload
// attribute holding the observation content.
const (
	dynamoPartitionKey     = "key"
	dynamoContentAttribute = "content"
)

type dynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// dynamoDBStore fetches payloads from URIs of the form
// dynamodb://<table>/<key>.
type dynamoDBStore struct {
	client  dynamoDBAPI
	once    sync.Once
	loadErr error
}

func (d *dynamoDBStore) api() (dynamoDBAPI, error) {
	d.once.Do(func() {
		if d.client == nil {
			cfg, err := config.LoadDefaultConfig(context.Background())
			if err != nil {
				d.loadErr = fmt.Errorf("cannot load AWS config: %w", err)
				return
			}
			d.client = dynamodb.NewFromConfig(cfg)
		}
	})
	return d.client, d.loadErr
}

func (d *dynamoDBStore) Fetch(uri string, destDir string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	table := parsed.Host
	key := strings.TrimPrefix(parsed.Path, "/")
	if table == "" || key == "" {
		return "", fmt.Errorf("DynamoDB data location %s must have the form dynamodb://<table>/<key>", uri)
	}

	client, err := d.api()
	if err != nil {
		return "", err
	}
	output, err := client.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: &table,
		Key: map[string]types.AttributeValue{
			dynamoPartitionKey: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return "", fmt.Errorf("DynamoDB read of %s failed: %w", uri, err)
	}
	if output.Item == nil {
		return "", fmt.Errorf("no item found for data location %s", uri)
	}

	var content []byte
	switch attr := output.Item[dynamoContentAttribute].(type) {
	case *types.AttributeValueMemberS:
		content = []byte(attr.Value)
	case *types.AttributeValueMemberB:
		content = attr.Value
	default:
		return "", fmt.Errorf("item for %s has no usable %q attribute", uri, dynamoContentAttribute)
	}
	return writePayload(destDir, localName(parsed), content)
}
