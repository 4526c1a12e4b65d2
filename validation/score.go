package validation

import "time"

// Score is the structured outcome of judging a model against a test. The
// runner fills in the identities, runtime, and timestamp; the uploader adds
// the de-duplication hash and the storage project before registering it.
//
// Scores are persisted between the run and upload phases as a JSON file.
type Score struct {
	// Value is the computed score. Typically a number, but tests may
	// produce any JSON-serializable value.
	Value interface{} `json:"score"`

	// RelatedData carries arbitrary artifacts associated with the score.
	// The "figures" key, if present, lists local paths of output files to
	// upload alongside the result.
	RelatedData map[string]interface{} `json:"related_data,omitempty"`

	// Runtime is the wall-clock duration of the test execution, rounded up
	// to whole seconds and formatted as "<n> s".
	Runtime string `json:"runtime,omitempty"`

	// ExecTimestamp is when the test execution completed.
	ExecTimestamp time.Time `json:"exec_timestamp"`

	// ScoreHash is the de-duplication hash; empty until the uploader
	// computes it.
	ScoreHash string `json:"score_hash,omitempty"`

	ModelName       string `json:"model_name"`
	ModelInstanceID string `json:"model_instance_id,omitempty"`
	TestID          string `json:"test_id,omitempty"`
	TestInstanceID  string `json:"test_instance_id"`
}

// OutputFiles returns the local file paths recorded under related_data
// "figures", if any.
func (s *Score) OutputFiles() []string {
	raw, ok := s.RelatedData["figures"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		files := make([]string, 0, len(v))
		for _, item := range v {
			if path, ok := item.(string); ok {
				files = append(files, path)
			}
		}
		return files
	}
	return nil
}
