// Package mockcatalog provides an in-memory implementation of the validation
// service's HTTP API, for use in tests. It serves the auth token endpoint,
// the model/test/result catalog endpoints, and plain file downloads for
// observation data.
package mockcatalog
