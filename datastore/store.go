package datastore

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// Store fetches the payload at a URI into a local directory and returns the
// path of the file it wrote.
type Store interface {
	Fetch(uri string, destDir string) (string, error)
}

// The supported scheme enumeration. Schemes not listed here are rejected.
var stores = map[string]Store{
	"http":     httpStore{},
	"https":    httpStore{},
	"s3":       &s3Store{},
	"dynamodb": &dynamoDBStore{},
	"redis":    &redisStore{},
	"consul":   &consulStore{},
}

// UnsupportedSchemeError means a data location URI uses a scheme with no
// registered store.
type UnsupportedSchemeError struct {
	Scheme string
	URI    string
}

func (e UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported URI scheme %q in data location %s", e.Scheme, e.URI)
}

// ForURI returns the store responsible for the URI's scheme.
func ForURI(uri string) (Store, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("malformed data location %q: %w", uri, err)
	}
	store, ok := stores[parsed.Scheme]
	if !ok {
		return nil, UnsupportedSchemeError{Scheme: parsed.Scheme, URI: uri}
	}
	return store, nil
}

// SupportedSchemes lists the schemes in the dispatch table, sorted.
func SupportedSchemes() []string {
	schemes := make([]string, 0, len(stores))
	for s := range stores {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Fetch resolves the store for the URI and downloads the payload into
// destDir.
func Fetch(uri string, destDir string) (string, error) {
	store, err := ForURI(uri)
	if err != nil {
		return "", err
	}
	return store.Fetch(uri, destDir)
}

// localName derives the local filename for a URI from the last element of
// its path, falling back to a fixed name for URIs without one.
func localName(parsed *url.URL) string {
	name := path.Base(parsed.Path)
	if name == "." || name == "/" || name == "" {
		return "observation.dat"
	}
	return name
}

func writePayload(destDir, name string, content []byte) (string, error) {
	localPath := filepath.Join(destDir, name)
	if err := os.WriteFile(localPath, content, 0644); err != nil {
		return "", fmt.Errorf("cannot write observation file: %w", err)
	}
	return localPath, nil
}
