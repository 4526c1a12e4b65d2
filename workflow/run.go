package workflow

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neuroval/validation-client/framework"
	"github.com/neuroval/validation-client/validation"
)

// Runner executes a prepared test against a model and persists the score.
type Runner struct {
	// Registry resolves test-instance paths to constructors. Nil means
	// validation.DefaultRegistry.
	Registry *validation.Registry
	Logger   framework.Logger
}

func (r Runner) registry() *validation.Registry {
	if r.Registry != nil {
		return r.Registry
	}
	return validation.DefaultRegistry
}

// Run judges the model with the test named by the descriptor at configPath
// and writes the score to <descriptor dir>/results/. It returns the score
// file path.
//
// The model may be any value; one that does not implement validation.Model
// is rejected with a ModelTypeError. Errors raised by the test itself
// propagate with their cause intact.
func (r Runner) Run(model interface{}, configPath string) (string, error) {
	logger := framework.OrNull(r.Logger)

	m, ok := model.(validation.Model)
	if !ok {
		return "", ModelTypeError{Value: model}
	}

	desc, err := ReadDescriptor(configPath)
	if err != nil {
		return "", err
	}
	runDir := filepath.Dir(configPath)

	observation, err := loadObservation(filepath.Join(runDir, desc.ObservationFile))
	if err != nil {
		return "", err
	}

	ctor, err := r.registry().LookupTest(desc.TestInstancePath)
	if err != nil {
		return "", TestLoadError{InstancePath: desc.TestInstancePath, Cause: err}
	}
	test, err := ctor(observation, desc.Params)
	if err != nil {
		return "", TestLoadError{InstancePath: desc.TestInstancePath, Cause: err}
	}

	logger.Printf("Judging model %q with test %s", m.Name(), desc.TestInstancePath)
	started := time.Now()
	score, err := test.Judge(m)
	if err != nil {
		return "", fmt.Errorf("test execution failed for %s: %w", desc.TestInstancePath, err)
	}
	completed := time.Now()

	elapsed := int(math.Ceil(completed.Sub(started).Seconds()))
	score.Runtime = fmt.Sprintf("%d s", elapsed)
	score.ExecTimestamp = completed
	score.ModelName = m.Name()
	score.ModelInstanceID = validation.ModelInstanceID(m)
	score.TestID = desc.TestID
	score.TestInstanceID = desc.TestInstanceID

	scorePath, err := writeScore(runDir, m.Name(), completed, score)
	if err != nil {
		return "", err
	}
	logger.Printf("Score written to %s", scorePath)
	return scorePath, nil
}

// loadObservation reads the observation file; JSON content is parsed,
// anything else is handed to the test as raw bytes.
func loadObservation(path string) (interface{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read observation file: %w", err)
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		var parsed interface{}
		if err := json.Unmarshal(content, &parsed); err != nil {
			return nil, fmt.Errorf("malformed JSON observation %s: %w", path, err)
		}
		return parsed, nil
	}
	return content, nil
}

func writeScore(runDir, modelName string, timestamp time.Time, score *validation.Score) (string, error) {
	resultsDir := filepath.Join(runDir, "results")
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create results directory: %w", err)
	}
	name := fmt.Sprintf("result__%s__%s.json", modelName, timestamp.Format(dirTimestampFormat))
	path := filepath.Join(resultsDir, name)
	data, err := json.MarshalIndent(score, "", "    ")
	if err != nil {
		return "", fmt.Errorf("cannot serialize score: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("cannot write score file: %w", err)
	}
	return path, nil
}

// WriteScoreFile rewrites a persisted score in place, e.g. after attaching
// output file paths to its related data.
func WriteScoreFile(path string, score *validation.Score) error {
	data, err := json.MarshalIndent(score, "", "    ")
	if err != nil {
		return fmt.Errorf("cannot serialize score: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write score file: %w", err)
	}
	return nil
}

// ReadScore loads a persisted score. A missing file is a
// ResultNotFoundError.
func ReadScore(path string) (*validation.Score, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, ResultNotFoundError{Path: path}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read score file: %w", err)
	}
	var score validation.Score
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, fmt.Errorf("malformed score file %s: %w", path, err)
	}
	return &score, nil
}
