package workflow

import (
	"github.com/neuroval/validation-client/catalog"
	"github.com/neuroval/validation-client/framework"
	"github.com/neuroval/validation-client/validation"
)

// Workflow chains prepare, run, and upload for the common one-shot case.
type Workflow struct {
	ModelCatalog *catalog.ModelCatalog
	Library      *catalog.TestLibrary
	Registry     *validation.Registry
	Logger       framework.Logger
}

// New builds a Workflow over a shared client handle. Reusing one client for
// both catalog views keeps the number of auth-service round trips down.
func New(client *catalog.Client, registry *validation.Registry, logger framework.Logger) *Workflow {
	return &Workflow{
		ModelCatalog: catalog.NewModelCatalog(client),
		Library:      catalog.NewTestLibrary(client),
		Registry:     registry,
		Logger:       logger,
	}
}

/// RunTest runs the three phases in sequence with no branching: the first
// failure aborts the chain and propagates unchanged. Files written by
// completed phases remain on disk.
func (w *Workflow) RunTest(model interface{}, prepOpts PrepareOptions, upOpts UploadOptions) (string, *validation.Score, error) {
	configPath, err := w.Prepare(prepOpts)
	if err != nil {
		return "", nil, err
	}
	scorePath, err := w.Run(model, configPath)
	if err != nil {
		return "", nil, err
	}
	return w.Upload(scorePath, upOpts)
}

// Prepare stages a test run; see Preparer.Prepare.
func (w *Workflow) Prepare(opts PrepareOptions) (string, error) {
	return Preparer{Library: w.Library, Logger: w.Logger}.Prepare(opts)
}

// Run executes a prepared test; see Runner.Run.
func (w *Workflow) Run(model interface{}, configPath string) (string, error) {
	return Runner{Registry: w.Registry, Logger: w.Logger}.Run(model, configPath)
}

// Upload registers a persisted score; see Uploader.Upload.
func (w *Workflow) Upload(scorePath string, opts UploadOptions) (string, *validation.Score, error) {
	return Uploader{ModelCatalog: w.ModelCatalog, Library: w.Library, Logger: w.Logger}.Upload(scorePath, opts)
}
