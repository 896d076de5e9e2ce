package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file name, looked up in the project root.
const DefaultFileName = "wheelforge.yaml"

// Loads configuration from an optional YAML file on top of the defaults.
//
// When path is empty, wheelforge.yaml in the project root is used if it
// exists; a missing default file is not an error. An explicitly given path
// must exist. Unknown keys in the file are rejected.
func Load(path, projectRoot string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(projectRoot, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
