// Package catalog is the HTTP client for the remote model-validation service.
// It covers the three record families the service exposes: models and model
// instances (ModelCatalog), test definitions and test instances (TestLibrary),
// and registered results (also via TestLibrary, mirroring the service's API
// grouping).
//
// ModelCatalog and TestLibrary share a *Client, which holds the service URLs
// and the authentication token. Reusing one Client across both avoids
// re-authenticating against the auth service on every call.
//
// All operations are synchronous and blocking, with no retries or timeouts;
// a failed call surfaces the HTTP status, method, and URL in the error.
package catalog
