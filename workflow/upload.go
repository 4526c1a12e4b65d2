package workflow

import (
	"fmt"
	"time"

	"github.com/neuroval/validation-client/catalog"
	"github.com/neuroval/validation-client/framework"
	"github.com/neuroval/validation-client/validation"
)

// UploadOptions carries the optional parameters of the upload phase.
type UploadOptions struct {
	// StorageCollabID names the collab where output files are stored. Empty
	// means the model's host collab.
	StorageCollabID string

	// ModelMetadata describes the model for registration in the catalog,
	// used when the score carries no model instance ID. It must include at
	// least one instance (whose version identifies the instance to use).
	ModelMetadata *catalog.Model
}

// Uploader registers a persisted score with the validation service.
type Uploader struct {
	ModelCatalog *catalog.ModelCatalog
	Library      *catalog.TestLibrary
	Logger       framework.Logger
}

// Upload reads the score at scorePath, resolves the model's catalog
// identity, refuses duplicates, and registers the result together with its
// output files under a timestamped storage folder. It returns the new result
// ID and the uploaded score (with hash and project filled in).
//
// If registration fails, the local score file is left untouched so the
// upload can be retried.
func (u Uploader) Upload(scorePath string, opts UploadOptions) (string, *validation.Score, error) {
	logger := framework.OrNull(u.Logger)

	score, err := ReadScore(scorePath)
	if err != nil {
		return "", nil, err
	}

	if score.ModelInstanceID == "" {
		instanceID, err := u.resolveModelInstance(score, opts.ModelMetadata, logger)
		if err != nil {
			return "", nil, err
		}
		score.ModelInstanceID = instanceID
	}

	instance, err := u.ModelCatalog.GetModelInstance(score.ModelInstanceID, "", "")
	if err != nil {
		return "", nil, err
	}
	model, err := u.ModelCatalog.GetModel(instance.ModelID, "")
	if err != nil {
		return "", nil, err
	}

	storageCollab := opts.StorageCollabID
	if storageCollab == "" {
		storageCollab = model.CollabID
	}
	if score.RelatedData == nil {
		score.RelatedData = make(map[string]interface{})
	}
	score.RelatedData["project"] = storageCollab

	hash, err := ScoreHash(score)
	if err != nil {
		return "", nil, err
	}
	score.ScoreHash = hash

	existing, err := u.Library.ListResults(map[string]string{
		"model_instance_id": score.ModelInstanceID,
		"test_instance_id":  score.TestInstanceID,
	})
	if err != nil {
		return "", nil, err
	}
	for _, res := range existing {
		if res.ScoreHash == hash {
			return "", nil, DuplicateResultError{
				ModelInstanceID:  score.ModelInstanceID,
				TestInstanceID:   score.TestInstanceID,
				ExistingResultID: res.ID,
				Hash:             hash,
			}
		}
	}

	storageFolder := fmt.Sprintf("%s_%s", model.Name, time.Now().Format(dirTimestampFormat))
	created, err := u.Library.RegisterResult(catalog.Result{
		ModelInstanceID: score.ModelInstanceID,
		TestInstanceID:  score.TestInstanceID,
		Score:           score.Value,
		ScoreHash:       hash,
		Runtime:         score.Runtime,
		Timestamp:       score.ExecTimestamp,
		Project:         storageCollab,
	}, score.OutputFiles(), storageFolder)
	if err != nil {
		return "", nil, err
	}
	logger.Printf("Result registered with ID %s", created.ID)
	return created.ID, score, nil
}

// resolveModelInstance finds a model instance ID for a score that has none:
// the latest instance of an already-cataloged model with the score's name, or
// failing that, a fresh registration from the supplied metadata.
func (u Uploader) resolveModelInstance(score *validation.Score, metadata *catalog.Model, logger framework.Logger) (string, error) {
	if score.ModelName != "" {
		models, err := u.ModelCatalog.ListModels(map[string]string{"name": score.ModelName})
		if err != nil {
			return "", err
		}
		if len(models) == 1 {
			instances, err := u.ModelCatalog.ListModelInstances(models[0].ID)
			if err != nil {
				return "", err
			}
			if len(instances) > 0 {
				return instances[len(instances)-1].ID, nil
			}
		}
	}

	if metadata == nil {
		return "", catalog.IdentificationError{
			Kind: "model instance",
			Need: "a model instance ID on the score, or model metadata",
		}
	}
	if len(metadata.Instances) == 0 {
		return "", fmt.Errorf("model metadata for %q must include at least one instance", metadata.Name)
	}
	meta := *metadata
	if meta.Name == "" {
		meta.Name = score.ModelName
	}
	logger.Printf("Registering model %q in the catalog", meta.Name)
	created, err := u.ModelCatalog.RegisterModel(meta)
	if err != nil {
		return "", err
	}
	instance, err := u.ModelCatalog.GetModelInstance("", created.ID, metadata.Instances[0].Version)
	if err != nil {
		return "", err
	}
	return instance.ID, nil
}
