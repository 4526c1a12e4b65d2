// Package datastore downloads test observation payloads from the locations
// recorded in the test catalog. A test definition's data_location is a URI;
// the URI scheme selects one of a fixed set of store implementations. Adding
// a scheme means adding a Store and an entry in the dispatch table; an
// unlisted scheme is an UnsupportedSchemeError, raised before any local file
// is written.
package datastore
