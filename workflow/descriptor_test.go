package workflow_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroval/validation-client/workflow"
)

func TestDescriptorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := workflow.TestDescriptor{
		TestID:           "t-1",
		TestInstanceID:   "ti-1",
		TestInstancePath: "neuroval.tests.CellDensityTest",
		ObservationFile:  "cell_density.json",
		Params: map[string]interface{}{
			"tolerance": 0.05,
			"region":    "CA1",
		},
	}

	path, err := workflow.WriteDescriptor(dir, original)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, workflow.DescriptorFileName), path)

	restored, err := workflow.ReadDescriptor(path)
	require.NoError(t, err)
	assert.Equal(t, original.TestID, restored.TestID)
	assert.Equal(t, original.TestInstanceID, restored.TestInstanceID)
	assert.Equal(t, original.TestInstancePath, restored.TestInstancePath)
	assert.Equal(t, original.ObservationFile, restored.ObservationFile)
	assert.Equal(t, 0.05, restored.Params["tolerance"])
	assert.Equal(t, "CA1", restored.Params["region"])
}

func TestReadDescriptorMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), workflow.DescriptorFileName)
	_, err := workflow.ReadDescriptor(path)
	require.Error(t, err)

	var notFound workflow.ConfigNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, path, notFound.Path)
}

func TestReadDescriptorDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := workflow.ReadDescriptor(dir)
	var notFound workflow.ConfigNotFoundError
	require.ErrorAs(t, err, &notFound)
}
