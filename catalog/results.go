package catalog

import (
	"fmt"
	"net/url"
)

// GetResult retrieves a registered result by ID.
func (tl *TestLibrary) GetResult(resultID string) (*Result, error) {
	if resultID == "" {
		return nil, IdentificationError{Kind: "result", Need: "result ID"}
	}
	query := url.Values{"id": {resultID}}
	var results []Result
	if err := tl.client.getJSON("/results", query, &results); err != nil {
		return nil, fmt.Errorf("error in retrieving result: %w", err)
	}
	if len(results) == 0 {
		return nil, NotFoundError{Kind: "result", ID: resultID}
	}
	return &results[0], nil
}

// ListResults lists results matching the given filters, typically
// "model_instance_id" and "test_instance_id".
func (tl *TestLibrary) ListResults(filters map[string]string) ([]Result, error) {
	query := url.Values{}
	for k, v := range filters {
		query.Set(k, v)
	}
	var results []Result
	if err := tl.client.getJSON("/results", query, &results); err != nil {
		return nil, fmt.Errorf("error in listing results: %w", err)
	}
	return results, nil
}

// RegisterResult creates a new result record and declares any associated
// output files, which the service stores under the given storage folder in
// the result's project. Returns the record with the server-assigned ID.
func (tl *TestLibrary) RegisterResult(result Result, files []string, storageFolder string) (*Result, error) {
	if result.ModelInstanceID == "" || result.TestInstanceID == "" {
		return nil, IdentificationError{
			Kind: "result registration",
			Need: "model instance ID and test instance ID",
		}
	}
	payload := struct {
		Result
		Files         []string `json:"files,omitempty"`
		StorageFolder string   `json:"storage_folder,omitempty"`
	}{result, files, storageFolder}
	var created Result
	if err := tl.client.postJSON("/results", payload, &created); err != nil {
		return nil, fmt.Errorf("error in registering result: %w", err)
	}
	return &created, nil
}

// ResolveStorage returns the storage location URI for a result blob within
// the given collab.
func (tl *TestLibrary) ResolveStorage(collabID string) (string, error) {
	if collabID == "" {
		return "", IdentificationError{Kind: "storage location", Need: "collab ID"}
	}
	query := url.Values{"collab_id": {collabID}}
	var resp struct {
		Location string `json:"location"`
	}
	if err := tl.client.getJSON("/storage", query, &resp); err != nil {
		return "", fmt.Errorf("error in resolving storage location: %w", err)
	}
	return resp.Location, nil
}
