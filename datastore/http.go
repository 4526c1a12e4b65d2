package datastore

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// httpStore downloads payloads over plain HTTP(S) GET.
type httpStore struct{}

func (httpStore) Fetch(uri string, destDir string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Get(uri)
	if err != nil {
		return "", fmt.Errorf("download of %s failed: %w", uri, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s failed with status %d", uri, resp.StatusCode)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("download of %s failed: %w", uri, err)
	}
	return writePayload(destDir, localName(parsed), content)
}
