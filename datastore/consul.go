package datastore

import (
	"fmt"
	"net/url"
	"strings"

	consul "github.com/hashicorp/consul/api"
)

// consulStore fetches payloads from Consul KV URIs of the form
// consul://<host>:<port>/<key path>.
type consulStore struct {
	// newKV can be replaced in tests.
	newKV func(addr string) (consulKV, error)
}

type consulKV interface {
	Get(key string, q *consul.QueryOptions) (*consul.KVPair, *consul.QueryMeta, error)
}

func (c *consulStore) kv(addr string) (consulKV, error) {
	if c.newKV != nil {
		return c.newKV(addr)
	}
	cfg := consul.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}
	client, err := consul.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return client.KV(), nil
}

func (c *consulStore) Fetch(uri string, destDir string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", fmt.Errorf("Consul data location %s must include a key path", uri)
	}

	kv, err := c.kv(parsed.Host)
	if err != nil {
		return "", fmt.Errorf("cannot connect to Consul for %s: %w", uri, err)
	}
	pair, _, err := kv.Get(key, nil)
	if err != nil {
		return "", fmt.Errorf("Consul read of %s failed: %w", uri, err)
	}
	if pair == nil {
		return "", fmt.Errorf("no value found for data location %s", uri)
	}
	return writePayload(destDir, localName(parsed), pair.Value)
}
