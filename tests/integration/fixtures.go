//go:build integration

package integration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Fixture is one end-to-end documentation run over hand-off files in testdata.
type Fixture struct {
	// Config is the testdoc config file relative to testdata. Empty uses defaults.
	Config string `yaml:"config"`
	// Inputs are globs of hand-off files relative to testdata.
	Inputs []string `yaml:"inputs"`
	Name   string   `yaml:"name"`
}

// FixturesConfig holds the list of fixtures to run.
type FixturesConfig struct {
	Fixtures []Fixture `yaml:"fixtures"`
}

// LoadFixtures loads fixture definitions from fixtures.yaml.
func LoadFixtures() (*FixturesConfig, error) {
	testDataDir, err := getTestDataDir()
	if err != nil {
		return nil, err
	}
	fixturesPath := filepath.Join(testDataDir, "..", "fixtures.yaml")
	return loadFixturesFromPath(fixturesPath)
}

func loadFixturesFromPath(path string) (*FixturesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures config from %s: %w", path, err)
	}

	var config FixturesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshal fixtures config: %w", err)
	}

	if err := validateFixturesConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid fixtures config: %w", err)
	}

	return &config, nil
}

func validateFixturesConfig(config *FixturesConfig) error {
	if len(config.Fixtures) == 0 {
		return errors.New("no fixtures defined")
	}

	seen := make(map[string]bool)
	for i, f := range config.Fixtures {
		if f.Name == "" {
			return fmt.Errorf("fixture %d: name is required", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("fixture %s: duplicate name", f.Name)
		}
		seen[f.Name] = true
		if len(f.Inputs) == 0 {
			return fmt.Errorf("fixture %s: at least one input is required", f.Name)
		}
	}
	return nil
}

func getTestDataDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(wd, "testdata"), nil
}
