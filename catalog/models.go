package catalog

import (
	"fmt"
	"net/url"
)

// ModelCatalog provides access to the model and model-instance records of the
// validation service.
type ModelCatalog struct {
	client *Client
}

// NewModelCatalog wraps an authenticated Client.
func NewModelCatalog(client *Client) *ModelCatalog {
	return &ModelCatalog{client: client}
}

// Client returns the underlying shared client handle.
func (mc *ModelCatalog) Client() *Client { return mc.client }

// GetModel retrieves a model description by ID or alias. At least one of the
// two must be supplied.
func (mc *ModelCatalog) GetModel(modelID, alias string) (*Model, error) {
	if modelID == "" && alias == "" {
		return nil, IdentificationError{Kind: "model", Need: "model ID or alias"}
	}
	query := url.Values{}
	if modelID != "" {
		query.Set("id", modelID)
	} else {
		query.Set("alias", alias)
	}
	var models []Model
	if err := mc.client.getJSON("/models", query, &models); err != nil {
		return nil, fmt.Errorf("error in retrieving model: %w", err)
	}
	if len(models) == 0 {
		return nil, NotFoundError{Kind: "model", ID: modelID + alias}
	}
	return &models[0], nil
}

// ListModels lists models matching the given filters (e.g. "collab_id",
// "brain_region", "cell_type"). An empty filter map lists everything.
func (mc *ModelCatalog) ListModels(filters map[string]string) ([]Model, error) {
	query := url.Values{}
	for k, v := range filters {
		query.Set(k, v)
	}
	var models []Model
	if err := mc.client.getJSON("/models", query, &models); err != nil {
		return nil, fmt.Errorf("error in listing models: %w", err)
	}
	return models, nil
}

// RegisterModel creates a new model record, returning it with the
// server-assigned ID (and instance IDs, if instances were included).
func (mc *ModelCatalog) RegisterModel(model Model) (*Model, error) {
	if model.Name == "" {
		return nil, IdentificationError{Kind: "model registration", Need: "model name"}
	}
	var created Model
	if err := mc.client.postJSON("/models", model, &created); err != nil {
		return nil, fmt.Errorf("error in registering model: %w", err)
	}
	return &created, nil
}

// EditModel updates fields of an existing model record.
func (mc *ModelCatalog) EditModel(model Model) (*Model, error) {
	if model.ID == "" {
		return nil, IdentificationError{Kind: "model update", Need: "model ID"}
	}
	var updated Model
	if err := mc.client.putJSON("/models/"+model.ID, model, &updated); err != nil {
		return nil, fmt.Errorf("error in updating model: %w", err)
	}
	return &updated, nil
}

// GetModelInstance retrieves a model instance, either directly by instance ID
// or by (model ID, version).
func (mc *ModelCatalog) GetModelInstance(instanceID, modelID, version string) (*ModelInstance, error) {
	query := url.Values{}
	switch {
	case instanceID != "":
		query.Set("id", instanceID)
	case modelID != "" && version != "":
		query.Set("model_id", modelID)
		query.Set("version", version)
	default:
		return nil, IdentificationError{Kind: "model instance", Need: "instance ID or (model ID, version)"}
	}
	var instances []ModelInstance
	if err := mc.client.getJSON("/models/instances", query, &instances); err != nil {
		return nil, fmt.Errorf("error in retrieving model instance: %w", err)
	}
	if len(instances) == 0 {
		return nil, NotFoundError{Kind: "model instance", ID: instanceID + modelID}
	}
	return &instances[0], nil
}

// ListModelInstances lists all instances of a model, in the order the
// service returns them (oldest first).
func (mc *ModelCatalog) ListModelInstances(modelID string) ([]ModelInstance, error) {
	if modelID == "" {
		return nil, IdentificationError{Kind: "model instances", Need: "model ID"}
	}
	query := url.Values{"model_id": {modelID}}
	var instances []ModelInstance
	if err := mc.client.getJSON("/models/instances", query, &instances); err != nil {
		return nil, fmt.Errorf("error in listing model instances: %w", err)
	}
	return instances, nil
}

// RegisterModelInstance creates a new versioned instance of an existing model.
func (mc *ModelCatalog) RegisterModelInstance(instance ModelInstance) (*ModelInstance, error) {
	if instance.ModelID == "" {
		return nil, IdentificationError{Kind: "model instance registration", Need: "model ID"}
	}
	var created ModelInstance
	if err := mc.client.postJSON("/models/instances", instance, &created); err != nil {
		return nil, fmt.Errorf("error in registering model instance: %w", err)
	}
	return &created, nil
}
