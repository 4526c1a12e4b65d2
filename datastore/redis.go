package datastore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/redis/go-redis/v9"
)

// redisStore fetches payloads from URIs of the form
// redis://<host>:<port>/<key>.
type redisStore struct {
	// newClient can be replaced in tests.
	newClient func(addr string) redisAPI
}

type redisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *redisStore) api(addr string) redisAPI {
	if r.newClient != nil {
		return r.newClient(addr)
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (r *redisStore) Fetch(uri string, destDir string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if parsed.Host == "" || key == "" {
		return "", fmt.Errorf("Redis data location %s must have the form redis://<host>:<port>/<key>", uri)
	}

	var ctx = context.Background()
	content, err := r.api(parsed.Host).Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("no value found for data location %s", uri)
		}
		return "", fmt.Errorf("Redis read of %s failed: %w", uri, err)
	}
	return writePayload(destDir, localName(parsed), content)
}
