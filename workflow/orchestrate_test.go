package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroval/validation-client/workflow"
)

func TestRunTestEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	model := env.seedModel(t)

	resultID, score, err := env.workflow.RunTest(model,
		workflow.PrepareOptions{
			TestAlias:   "CDT-5",
			TestVersion: "5.0",
			BaseDir:     t.TempDir(),
		},
		workflow.UploadOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, resultID)
	assert.Equal(t, 0.75, score.Value)
	assert.Regexp(t, `^\d+ s$`, score.Runtime)
	assert.Equal(t, model.InstanceID(), score.ModelInstanceID)
	assert.Len(t, env.service.Results(), 1)
}

func TestRunTestAbortsOnPrepareFailure(t *testing.T) {
	env := newTestEnv(t)
	model := env.seedModel(t)

	_, _, err := env.workflow.RunTest(model,
		workflow.PrepareOptions{
			TestAlias:   "CDT-5",
			TestVersion: "9.9", // no such instance
			BaseDir:     t.TempDir(),
		},
		workflow.UploadOptions{})
	require.Error(t, err)
	assert.Empty(t, env.service.Results(), "no result may be registered when prepare fails")
}

func TestRunTestAbortsOnBadModel(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.workflow.RunTest(42,
		workflow.PrepareOptions{
			TestAlias:   "CDT-5",
			TestVersion: "5.0",
			BaseDir:     t.TempDir(),
		},
		workflow.UploadOptions{})
	require.Error(t, err)

	var typeErr workflow.ModelTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Empty(t, env.service.Results())
}
