package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/neuroval/validation-client/catalog"
	"github.com/neuroval/validation-client/datastore"
	"github.com/neuroval/validation-client/framework"
)

const dirTimestampFormat = "20060102-150405"

// PrepareOptions identifies the test to prepare and where to put the run
// directory. The test identity combinations are tried in priority order:
// TestInstanceID, then (TestID, TestVersion), then (TestAlias, TestVersion);
// an empty version resolves the latest instance.
type PrepareOptions struct {
	TestInstanceID string
	TestID         string
	TestAlias      string
	TestVersion    string

	// BaseDir is the root under which the run directory is created.
	// Defaults to ".".
	BaseDir string

	// Namespace is the first path element of the run directory, separating
	// runs prepared by different tools. Defaults to "validation".
	Namespace string

	// Params are passed through to the test constructor at run time.
	Params map[string]interface{}
}

// Preparer resolves a test in the catalog and stages its observation data
// and descriptor locally.
type Preparer struct {
	Library *catalog.TestLibrary
	Logger  framework.Logger
}

// Prepare creates <BaseDir>/<Namespace>/<test_id>/<timestamp>/ containing
// the downloaded observation file and the test descriptor, and returns the
// descriptor path.
//
// An unsupported data-location scheme fails before any directory or file is
// created.
func (p Preparer) Prepare(opts PrepareOptions) (string, error) {
	logger := framework.OrNull(p.Logger)

	instance, err := p.Library.GetTestInstance(opts.TestInstanceID, opts.TestID, opts.TestAlias, opts.TestVersion)
	if err != nil {
		return "", err
	}
	test, err := p.Library.GetTestDefinition(instance.TestID, "")
	if err != nil {
		return "", err
	}
	if test.DataLocation == "" {
		return "", fmt.Errorf("test %s has no data location", test.ID)
	}
	store, err := datastore.ForURI(test.DataLocation)
	if err != nil {
		return "", err
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = "validation"
	}
	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	runDir := filepath.Join(baseDir, namespace, test.ID, time.Now().Format(dirTimestampFormat))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create run directory: %w", err)
	}

	logger.Printf("Downloading observation data from %s", test.DataLocation)
	observationPath, err := store.Fetch(test.DataLocation, runDir)
	if err != nil {
		return "", err
	}

	desc := TestDescriptor{
		TestID:           test.ID,
		TestInstanceID:   instance.ID,
		TestInstancePath: instance.Path,
		ObservationFile:  filepath.Base(observationPath),
		Params:           opts.Params,
	}
	descPath, err := WriteDescriptor(runDir, desc)
	if err != nil {
		return "", err
	}
	logger.Printf("Test run prepared in %s", runDir)
	return descPath, nil
}
