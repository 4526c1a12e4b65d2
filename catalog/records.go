package catalog

import "time"

// The service exchanges loosely-typed JSON records. The fields below are the
// ones this client reads or writes; anything else the service includes is
// ignored on decode.

// Model is an abstract model description in the model catalog.
type Model struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Alias       string          `json:"alias,omitempty"`
	Author      string          `json:"author,omitempty"`
	Owner       string          `json:"owner,omitempty"`
	CollabID    string          `json:"collab_id,omitempty"`
	Organization string         `json:"organization,omitempty"`
	Private     bool            `json:"private,omitempty"`
	CellType    string          `json:"cell_type,omitempty"`
	ModelScope  string          `json:"model_scope,omitempty"`
	BrainRegion string          `json:"brain_region,omitempty"`
	Species     string          `json:"species,omitempty"`
	Description string          `json:"description,omitempty"`
	Instances   []ModelInstance `json:"instances,omitempty"`
}

// ModelInstance is a versioned registration of a specific model
// implementation.
type ModelInstance struct {
	ID        string `json:"id,omitempty"`
	ModelID   string `json:"model_id,omitempty"`
	Version   string `json:"version"`
	Source    string `json:"source,omitempty"`
	Parameters string `json:"parameters,omitempty"`
}

// TestDefinition is an abstract test description in the test library.
type TestDefinition struct {
	ID           string         `json:"id,omitempty"`
	Name         string         `json:"name"`
	Alias        string         `json:"alias,omitempty"`
	Species      string         `json:"species,omitempty"`
	BrainRegion  string         `json:"brain_region,omitempty"`
	CellType     string         `json:"cell_type,omitempty"`
	DataLocation string         `json:"data_location,omitempty"`
	DataType     string         `json:"data_type,omitempty"`
	DataModality string         `json:"data_modality,omitempty"`
	TestType     string         `json:"test_type,omitempty"`
	ScoreType    string         `json:"score_type,omitempty"`
	Protocol     string         `json:"protocol,omitempty"`
	Instances    []TestInstance `json:"instances,omitempty"`
}

// TestInstance is a versioned registration of a specific test implementation.
// Path locates the test implementation (e.g. "hbp.validation.cdt.CDTTest")
// in the local test registry.
type TestInstance struct {
	ID         string `json:"id,omitempty"`
	TestID     string `json:"test_definition_id,omitempty"`
	Version    string `json:"version"`
	Repository string `json:"repository,omitempty"`
	Path       string `json:"path,omitempty"`
}

// Result is a registered judgement of one model instance against one test
// instance.
type Result struct {
	ID              string      `json:"id,omitempty"`
	ModelInstanceID string      `json:"model_instance_id"`
	TestInstanceID  string      `json:"test_instance_id"`
	Score           interface{} `json:"score"`
	ScoreHash       string      `json:"hash,omitempty"`
	Runtime         string      `json:"runtime,omitempty"`
	Timestamp       time.Time   `json:"timestamp,omitempty"`
	Project         string      `json:"project,omitempty"`
	ResultsStorage  string      `json:"results_storage,omitempty"`
	Passed          *bool       `json:"passed,omitempty"`
}
