package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional ~/.cborinspect.yaml config cborinspect loads
// before applying CLI flags (spec §B.4). CLI flags always win when set
// explicitly; the config only supplies defaults for flags left at their
// kong zero value.
//
// max nesting depth is not configurable here: decoder.MaxNesting is a
// compile-time array bound (nesting.go's nestingStack), not a runtime
// parameter, so there is nothing for this config to override.
type fileConfig struct {
	Mode        string   `yaml:"mode"`
	UnknownTags []uint64 `yaml:"unknown_tags"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileConfig{}, nil
		}
		return nil, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
