package workflow_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroval/validation-client/catalog"
	"github.com/neuroval/validation-client/datastore"
	"github.com/neuroval/validation-client/workflow"
)

func TestPrepareStagesRunDirectory(t *testing.T) {
	env := newTestEnv(t)
	baseDir := t.TempDir()

	configPath, err := env.workflow.Prepare(workflow.PrepareOptions{
		TestAlias:   "CDT-5",
		TestVersion: "5.0",
		BaseDir:     baseDir,
		Params:      map[string]interface{}{"tolerance": 0.05},
	})
	require.NoError(t, err)

	runDir := filepath.Dir(configPath)
	assert.Equal(t, workflow.DescriptorFileName, filepath.Base(configPath))
	// <base>/validation/<test_id>/<timestamp>
	assert.Equal(t, env.seededTest.ID, filepath.Base(filepath.Dir(runDir)))
	assert.Equal(t, "validation", filepath.Base(filepath.Dir(filepath.Dir(runDir))))

	desc, err := workflow.ReadDescriptor(configPath)
	require.NoError(t, err)
	assert.Equal(t, env.seededTest.ID, desc.TestID)
	assert.Equal(t, env.seededTest.Instances[1].ID, desc.TestInstanceID)
	assert.Equal(t, cellDensityTestPath, desc.TestInstancePath)
	assert.Equal(t, "cell_density.json", desc.ObservationFile)
	assert.Equal(t, 0.05, desc.Params["tolerance"])

	// Observation file sits next to the descriptor.
	_, err = os.Stat(filepath.Join(runDir, desc.ObservationFile))
	assert.NoError(t, err)
}

func TestPrepareByInstanceID(t *testing.T) {
	env := newTestEnv(t)

	configPath, err := env.workflow.Prepare(workflow.PrepareOptions{
		TestInstanceID: env.seededTest.Instances[0].ID,
		BaseDir:        t.TempDir(),
	})
	require.NoError(t, err)

	desc, err := workflow.ReadDescriptor(configPath)
	require.NoError(t, err)
	assert.Equal(t, env.seededTest.Instances[0].ID, desc.TestInstanceID)
}

func TestPrepareCustomNamespace(t *testing.T) {
	env := newTestEnv(t)
	baseDir := t.TempDir()

	configPath, err := env.workflow.Prepare(workflow.PrepareOptions{
		TestAlias:   "CDT-5",
		TestVersion: "5.0",
		BaseDir:     baseDir,
		Namespace:   "curation",
	})
	require.NoError(t, err)
	assert.Contains(t, configPath, filepath.Join(baseDir, "curation"))
}

func TestPrepareRequiresIdentity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workflow.Prepare(workflow.PrepareOptions{BaseDir: t.TempDir()})
	require.Error(t, err)

	var identErr catalog.IdentificationError
	require.ErrorAs(t, err, &identErr)
}

func TestPrepareUnsupportedSchemeWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.service.AddTest(catalog.TestDefinition{
		Name:         "FTP Test",
		Alias:        "FTP-1",
		DataLocation: "ftp://example.org/data/obs.json",
		Instances: []catalog.TestInstance{
			{Version: "1.0", Path: "neuroval.tests.FTPTest"},
		},
	})

	baseDir := t.TempDir()
	_, err := env.workflow.Prepare(workflow.PrepareOptions{
		TestAlias:   "FTP-1",
		TestVersion: "1.0",
		BaseDir:     baseDir,
	})
	require.Error(t, err)

	var unsupported datastore.UnsupportedSchemeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ftp", unsupported.Scheme)

	entries, readErr := os.ReadDir(baseDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "nothing should be written for an unsupported scheme")
}
