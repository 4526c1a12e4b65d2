package workflow

import "fmt"

// ConfigNotFoundError means the test descriptor path did not resolve to a
// file.
type ConfigNotFoundError struct {
	Path string
}

func (e ConfigNotFoundError) Error() string {
	return fmt.Sprintf("test descriptor not found at %s", e.Path)
}

// ResultNotFoundError means the persisted score path did not resolve to a
// file.
type ResultNotFoundError struct {
	Path string
}

func (e ResultNotFoundError) Error() string {
	return fmt.Sprintf("result file not found at %s", e.Path)
}

// TestLoadError means the test implementation named by a descriptor's
// instance path could not be resolved in the registry.
type TestLoadError struct {
	InstancePath string
	Cause        error
}

func (e TestLoadError) Error() string {
	return fmt.Sprintf("cannot load test implementation %q: %s", e.InstancePath, e.Cause)
}

func (e TestLoadError) Unwrap() error { return e.Cause }

// ModelTypeError means the supplied model object does not satisfy the
// validation.Model capability contract.
type ModelTypeError struct {
	Value interface{}
}

func (e ModelTypeError) Error() string {
	return fmt.Sprintf("supplied model of type %T does not implement validation.Model", e.Value)
}

// DuplicateResultError means a result with the same de-duplication hash is
// already registered for the same model instance and test instance.
type DuplicateResultError struct {
	ModelInstanceID  string
	TestInstanceID   string
	ExistingResultID string
	Hash             string
}

func (e DuplicateResultError) Error() string {
	return fmt.Sprintf(
		"result for model instance %s and test instance %s duplicates registered result %s (hash %s)",
		e.ModelInstanceID, e.TestInstanceID, e.ExistingResultID, e.Hash)
}
