package workflow_test

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neuroval/validation-client/catalog"
	"github.com/neuroval/validation-client/mockcatalog"
	"github.com/neuroval/validation-client/validation"
	"github.com/neuroval/validation-client/workflow"
)

const cellDensityTestPath = "neuroval.tests.CellDensityTest"

// hippoModel is a minimal model satisfying the validation.Model contract.
type hippoModel struct {
	name       string
	instanceID string
}

func (m hippoModel) Name() string { return m.name }

// registeredHippoModel additionally carries a catalog instance ID.
type registeredHippoModel struct {
	hippoModel
}

func (m registeredHippoModel) InstanceID() string { return m.instanceID }

// cellDensityTest compares the model against the observed cell density.
type cellDensityTest struct {
	observation interface{}
	params      map[string]interface{}
	judgeErr    error
}

func (c *cellDensityTest) Judge(m validation.Model) (*validation.Score, error) {
	if c.judgeErr != nil {
		return nil, fmt.Errorf("cell density comparison failed: %w", c.judgeErr)
	}
	return &validation.Score{
		Value: 0.75,
		RelatedData: map[string]interface{}{
			"observation": c.observation,
		},
	}, nil
}

type testEnv struct {
	service  *mockcatalog.Service
	client   *catalog.Client
	registry *validation.Registry
	workflow *workflow.Workflow

	seededTest catalog.TestDefinition
}

// newTestEnv seeds the mock service with the CDT-5 test (instance versions
// 4.0 and 5.0), an observation payload, and a registered hippoCircuit model,
// and registers the matching local test implementation.
func newTestEnv(t *testing.T) *testEnv {
	service := mockcatalog.NewService(nil)
	server := httptest.NewServer(service)
	t.Cleanup(server.Close)

	client := catalog.NewClient(service.Environment(server.URL), nil)
	require.NoError(t, client.Authenticate("tester", "pw"))

	service.AddObservation("cell_density.json", []byte(`{"density": 120000}`))
	seededTest := service.AddTest(catalog.TestDefinition{
		Name:         "Cell Density Test",
		Alias:        "CDT-5",
		DataLocation: server.URL + "/data/cell_density.json",
		Instances: []catalog.TestInstance{
			{Version: "4.0", Path: cellDensityTestPath},
			{Version: "5.0", Path: cellDensityTestPath},
		},
	})

	registry := validation.NewRegistry()
	registry.RegisterTest(cellDensityTestPath, func(obs interface{}, params map[string]interface{}) (validation.Test, error) {
		return &cellDensityTest{observation: obs, params: params}, nil
	})

	return &testEnv{
		service:    service,
		client:     client,
		registry:   registry,
		workflow:   workflow.New(client, registry, nil),
		seededTest: seededTest,
	}
}

// seedModel registers a hippoCircuit model in the mock catalog and returns a
// model handle carrying its instance ID.
func (env *testEnv) seedModel(t *testing.T) registeredHippoModel {
	seeded := env.service.AddModel(catalog.Model{
		Name:     "hippoCircuit",
		Alias:    "HCkt",
		CollabID: "model-validation",
		Instances: []catalog.ModelInstance{
			{Version: "1.0"},
		},
	})
	require.Len(t, seeded.Instances, 1)
	return registeredHippoModel{hippoModel{
		name:       "hippoCircuit",
		instanceID: seeded.Instances[0].ID,
	}}
}

var errJudgementBroken = errors.New("simulation did not converge")
