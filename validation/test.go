package validation

// Test is a validation test instance, already bound to its observation data
// and parameters. Judge evaluates the model and returns a Score.
//
// Errors returned by Judge are propagated to the caller with their underlying
// cause intact; the workflow never swallows or retries a failed judgement.
type Test interface {
	Judge(model Model) (*Score, error)
}

// Constructor builds a Test from the downloaded observation data and the
// parameters recorded in the test descriptor. The observation is a parsed
// JSON value (map[string]interface{} or []interface{}) when the observation
// file contained JSON, or the raw []byte content otherwise.
type Constructor func(observation interface{}, params map[string]interface{}) (Test, error)

// ModelConstructor builds a Model by name; used by the command-line entry
// point, which cannot be handed a live Go object.
type ModelConstructor func() (Model, error)
