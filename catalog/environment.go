package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment selects which deployment of the validation service to talk to.
// "production" and "dev" are built in; any other name is looked up in an
// external YAML config file supplied by the caller.
type Environment struct {
	Name       string `yaml:"name"`
	ServiceURL string `yaml:"service_url"`
	AuthURL    string `yaml:"auth_url"`
}

var builtinEnvironments = map[string]Environment{
	"production": {
		Name:       "production",
		ServiceURL: "https://validation.neuroval.org/api/v2",
		AuthURL:    "https://auth.neuroval.org",
	},
	"dev": {
		Name:       "dev",
		ServiceURL: "https://validation-dev.neuroval.org/api/v2",
		AuthURL:    "https://auth.neuroval.org",
	},
}

// LookupEnvironment resolves an environment name. For names other than the
// built-in ones, configPath must point to a YAML file containing a list of
// environment entries.
func LookupEnvironment(name, configPath string) (Environment, error) {
	if name == "" {
		name = "production"
	}
	if env, ok := builtinEnvironments[name]; ok {
		return env, nil
	}
	if configPath == "" {
		return Environment{}, fmt.Errorf("unknown environment %q and no config file given", name)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return Environment{}, fmt.Errorf("cannot read environment config: %w", err)
	}
	var envs []Environment
	if err := yaml.Unmarshal(data, &envs); err != nil {
		return Environment{}, fmt.Errorf("malformed environment config %s: %w", configPath, err)
	}
	for _, env := range envs {
		if env.Name == name {
			return env, nil
		}
	}
	return Environment{}, fmt.Errorf("environment %q not found in %s", name, configPath)
}
