package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the parameter file name looked up inside a config dir.
const DefaultFile = "parameters.yaml"

// file is the on-disk layout of parameters.yaml.
type file struct {
	Parameters map[string]float64 `yaml:"parameters"`
	Run        runBlock           `yaml:"run"`
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadAll reads dir/parameters.yaml and returns the parameter store and
// the run settings, with run sizing filled from the store when the run
// block leaves it out.
func LoadAll(dir string) (*Parameters, *RunSettings, error) {
	return LoadFile(filepath.Join(dir, DefaultFile))
}

func LoadFile(path string) (*Parameters, *RunSettings, error) {
	var f file
	if err := loadYAML(path, &f); err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	params := NewParameters(f.Parameters)
	run, err := f.Run.settings(params)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return params, run, nil
}
