package datastore

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedSchemes(t *testing.T) {
	assert.Equal(t, []string{"consul", "dynamodb", "http", "https", "redis", "s3"}, SupportedSchemes())
}

func TestForURIDispatch(t *testing.T) {
	for _, uri := range []string{
		"http://example.org/data/obs.json",
		"https://example.org/data/obs.json",
		"s3://bucket/obs.json",
		"dynamodb://table/obs",
		"redis://localhost:6379/obs",
		"consul://localhost:8500/data/obs",
	} {
		store, err := ForURI(uri)
		require.NoError(t, err, uri)
		require.NotNil(t, store, uri)
	}
}

func TestForURIUnsupportedScheme(t *testing.T) {
	_, err := ForURI("ftp://example.org/data/obs.json")
	require.Error(t, err)

	var unsupported UnsupportedSchemeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ftp", unsupported.Scheme)
	assert.Contains(t, err.Error(), "ftp://example.org/data/obs.json")
}

func TestFetchUnsupportedSchemeWritesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := Fetch("ftp://example.org/data/obs.json", dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHTTPStoreFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/cell_density.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"density": 120000}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	localPath, err := Fetch(server.URL+"/data/cell_density.json", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cell_density.json"), localPath)

	content, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"density": 120000}`, string(content))
}

func TestHTTPStoreFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	_, err := Fetch(server.URL+"/data/missing.json", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestLocalNameFallback(t *testing.T) {
	dir := t.TempDir()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("raw"))
	}))
	defer server.Close()

	localPath, err := Fetch(server.URL+"/", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "observation.dat"), localPath)
}
