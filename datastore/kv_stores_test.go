package datastore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	consul "github.com/hashicorp/consul/api"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	values map[string]string
}

func (f fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if val, ok := f.values[key]; ok {
		return redis.NewStringResult(val, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func TestRedisStoreFetch(t *testing.T) {
	store := &redisStore{newClient: func(addr string) redisAPI {
		assert.Equal(t, "localhost:6379", addr)
		return fakeRedis{values: map[string]string{"observations/obs.json": `{"n": 1}`}}
	}}

	dir := t.TempDir()
	localPath, err := store.Fetch("redis://localhost:6379/observations/obs.json", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "obs.json"), localPath)

	content, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 1}`, string(content))
}

func TestRedisStoreMissingKey(t *testing.T) {
	store := &redisStore{newClient: func(addr string) redisAPI {
		return fakeRedis{values: map[string]string{}}
	}}
	_, err := store.Fetch("redis://localhost:6379/absent", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value found")
}

type fakeConsulKV struct {
	values map[string][]byte
}

func (f fakeConsulKV) Get(key string, q *consul.QueryOptions) (*consul.KVPair, *consul.QueryMeta, error) {
	if val, ok := f.values[key]; ok {
		return &consul.KVPair{Key: key, Value: val}, nil, nil
	}
	return nil, nil, nil
}

func TestConsulStoreFetch(t *testing.T) {
	store := &consulStore{newKV: func(addr string) (consulKV, error) {
		assert.Equal(t, "localhost:8500", addr)
		return fakeConsulKV{values: map[string][]byte{"data/obs.json": []byte(`{"n": 2}`)}}, nil
	}}

	dir := t.TempDir()
	localPath, err := store.Fetch("consul://localhost:8500/data/obs.json", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "obs.json"), localPath)
}

func TestConsulStoreMissingKey(t *testing.T) {
	store := &consulStore{newKV: func(addr string) (consulKV, error) {
		return fakeConsulKV{}, nil
	}}
	_, err := store.Fetch("consul://localhost:8500/data/absent", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value found")
}

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func (f fakeS3) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	key := aws.StringValue(input.Bucket) + "/" + aws.StringValue(input.Key)
	content, ok := f.objects[key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(content))}, nil
}

func TestS3StoreFetch(t *testing.T) {
	store := &s3Store{client: fakeS3{objects: map[string][]byte{
		"neuroval-data/observations/obs.json": []byte(`{"n": 4}`),
	}}}

	dir := t.TempDir()
	localPath, err := store.Fetch("s3://neuroval-data/observations/obs.json", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "obs.json"), localPath)

	content, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 4}`, string(content))
}

func TestS3StoreMissingObject(t *testing.T) {
	store := &s3Store{client: fakeS3{}}
	_, err := store.Fetch("s3://neuroval-data/absent", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3 download")
}

type fakeDynamoDB struct {
	items map[string]map[string]dynamotypes.AttributeValue
}

func (f fakeDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	keyAttr, _ := params.Key[dynamoPartitionKey].(*dynamotypes.AttributeValueMemberS)
	if keyAttr == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyAttr.Value]}, nil
}

func TestDynamoDBStoreFetch(t *testing.T) {
	store := &dynamoDBStore{client: fakeDynamoDB{items: map[string]map[string]dynamotypes.AttributeValue{
		"obs.json": {
			dynamoContentAttribute: &dynamotypes.AttributeValueMemberS{Value: `{"n": 3}`},
		},
	}}}

	dir := t.TempDir()
	localPath, err := store.Fetch("dynamodb://observations/obs.json", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "obs.json"), localPath)
}

func TestDynamoDBStoreMissingItem(t *testing.T) {
	store := &dynamoDBStore{client: fakeDynamoDB{}}
	_, err := store.Fetch("dynamodb://observations/absent", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no item found")
}
