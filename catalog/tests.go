package catalog

import (
	"fmt"
	"net/url"
)

// TestLibrary provides access to test definitions, test instances, and
// registered results.
type TestLibrary struct {
	client *Client
}

// NewTestLibrary wraps an authenticated Client.
func NewTestLibrary(client *Client) *TestLibrary {
	return &TestLibrary{client: client}
}

// Client returns the underlying shared client handle.
func (tl *TestLibrary) Client() *Client { return tl.client }

// GetTestDefinition retrieves a test definition by ID or alias.
func (tl *TestLibrary) GetTestDefinition(testID, alias string) (*TestDefinition, error) {
	if testID == "" && alias == "" {
		return nil, IdentificationError{Kind: "test", Need: "test ID or alias"}
	}
	query := url.Values{}
	if testID != "" {
		query.Set("id", testID)
	} else {
		query.Set("alias", alias)
	}
	var tests []TestDefinition
	if err := tl.client.getJSON("/tests", query, &tests); err != nil {
		return nil, fmt.Errorf("error in retrieving test: %w", err)
	}
	if len(tests) == 0 {
		return nil, NotFoundError{Kind: "test", ID: testID + alias}
	}
	return &tests[0], nil
}

// ListTestDefinitions lists test definitions matching the given filters.
func (tl *TestLibrary) ListTestDefinitions(filters map[string]string) ([]TestDefinition, error) {
	query := url.Values{}
	for k, v := range filters {
		query.Set(k, v)
	}
	var tests []TestDefinition
	if err := tl.client.getJSON("/tests", query, &tests); err != nil {
		return nil, fmt.Errorf("error in listing tests: %w", err)
	}
	return tests, nil
}

// RegisterTestDefinition creates a new test definition record.
func (tl *TestLibrary) RegisterTestDefinition(test TestDefinition) (*TestDefinition, error) {
	if test.Name == "" {
		return nil, IdentificationError{Kind: "test registration", Need: "test name"}
	}
	var created TestDefinition
	if err := tl.client.postJSON("/tests", test, &created); err != nil {
		return nil, fmt.Errorf("error in registering test: %w", err)
	}
	return &created, nil
}

// GetTestInstance resolves exactly one test instance. The identifying
// combinations are tried in priority order:
//
//  1. instanceID
//  2. testID + version
//  3. alias + version
//
// A testID or alias with an empty version resolves the latest instance of
// that test. Supplying none of the identifiers is an IdentificationError.
func (tl *TestLibrary) GetTestInstance(instanceID, testID, alias, version string) (*TestInstance, error) {
	if instanceID != "" {
		query := url.Values{"id": {instanceID}}
		var instances []TestInstance
		if err := tl.client.getJSON("/tests/instances", query, &instances); err != nil {
			return nil, fmt.Errorf("error in retrieving test instance: %w", err)
		}
		if len(instances) == 0 {
			return nil, NotFoundError{Kind: "test instance", ID: instanceID}
		}
		return &instances[0], nil
	}

	if testID == "" && alias == "" {
		return nil, IdentificationError{
			Kind: "test instance",
			Need: "test_instance_id or (test_id, test_version) or (test_alias, test_version)",
		}
	}

	if testID == "" {
		test, err := tl.GetTestDefinition("", alias)
		if err != nil {
			return nil, err
		}
		testID = test.ID
	}

	instances, err := tl.ListTestInstances(testID)
	if err != nil {
		return nil, err
	}
	if version == "" {
		// No version given: take the latest instance.
		if len(instances) == 0 {
			return nil, NotFoundError{Kind: "test instance", ID: testID}
		}
		return &instances[len(instances)-1], nil
	}
	for i := range instances {
		if instances[i].Version == version {
			return &instances[i], nil
		}
	}
	return nil, NotFoundError{Kind: "test instance", ID: testID + "@" + version}
}

// ListTestInstances lists all instances of a test definition, oldest first.
func (tl *TestLibrary) ListTestInstances(testID string) ([]TestInstance, error) {
	if testID == "" {
		return nil, IdentificationError{Kind: "test instances", Need: "test ID"}
	}
	query := url.Values{"test_definition_id": {testID}}
	var instances []TestInstance
	if err := tl.client.getJSON("/tests/instances", query, &instances); err != nil {
		return nil, fmt.Errorf("error in listing test instances: %w", err)
	}
	return instances, nil
}
