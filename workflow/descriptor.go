package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DescriptorFileName is the fixed name of the test descriptor within a
// prepared run directory.
const DescriptorFileName = "test_config.json"

// TestDescriptor records which test to run offline: the resolved catalog
// identities, the registry path of the implementation, the local observation
// filename, and any extra constructor parameters. It is written once by the
// prepare phase and read by the run phase; the observation file must live in
// the same directory as the descriptor.
type TestDescriptor struct {
	TestID           string                 `json:"test_id"`
	TestInstanceID   string                 `json:"test_instance_id"`
	TestInstancePath string                 `json:"test_instance_path"`
	ObservationFile  string                 `json:"test_observation_file"`
	Params           map[string]interface{} `json:"params"`
}

// WriteDescriptor serializes the descriptor into dir as indented JSON and
// returns the file path.
func WriteDescriptor(dir string, desc TestDescriptor) (string, error) {
	data, err := json.MarshalIndent(desc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("cannot serialize test descriptor: %w", err)
	}
	path := filepath.Join(dir, DescriptorFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("cannot write test descriptor: %w", err)
	}
	return path, nil
}

// ReadDescriptor loads a descriptor. A missing file is a
// ConfigNotFoundError.
func ReadDescriptor(path string) (*TestDescriptor, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, ConfigNotFoundError{Path: path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read test descriptor: %w", err)
	}
	var desc TestDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("malformed test descriptor %s: %w", path, err)
	}
	return &desc, nil
}
