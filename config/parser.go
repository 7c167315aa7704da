package config

import (
	"errors"
	"io"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const configName = "mediadownloader/config.yml"

// Path returns the location of the configuration file
func Path() string {
	path, err := xdg.SearchConfigFile(configName)
	if err != nil {
		return ""
	}
	return path
}

// Parse reads the configuration file at path: a missing file
// is not an error and yields the defaults
func Parse(path string) (*Config, error) {
	config := new(Config)
	if path == "" {
		config.fill()
		return config, nil
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		config.fill()
		return config, nil
	} else if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	config.fill()
	return config, nil
}
