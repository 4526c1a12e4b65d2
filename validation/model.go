package validation

// Model is the minimal capability a caller-supplied model object must have:
// a name that identifies it in the model catalog.
type Model interface {
	Name() string
}

// RegisteredModel is an optional capability for models that already have a
// versioned registration in the catalog. When a model implements it and
// returns a non-empty ID, the uploader uses that identity instead of looking
// the model up (or registering it) by name.
type RegisteredModel interface {
	Model
	InstanceID() string
}

// ModelInstanceID returns the model's catalog instance ID if it has one,
// or "" otherwise.
func ModelInstanceID(m Model) string {
	if rm, ok := m.(RegisteredModel); ok {
		return rm.InstanceID()
	}
	return ""
}
