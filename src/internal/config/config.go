package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	xerrors "github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// LoadConfig reads the configuration file. Files ending in ".toml" are parsed
// as TOML, everything else as YAML; both produce the same model.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, xerrors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Errorf("Configuration file not found: %s", configFile)
		return nil, xerrors.NewConfigError(fmt.Sprintf("configuration file not found: %s", configFile), nil)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, xerrors.NewConfigError("failed to read config file", err)
	}

	var config *Config
	if strings.EqualFold(filepath.Ext(configFile), ".toml") {
		config, err = ParseTOML(content)
	} else {
		config, err = ParseYAML(content)
	}
	if err != nil {
		return nil, err
	}

	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Routing tables: %v", config.Route.Tables.IDs())

	return config, nil
}

// ParseYAML decodes a YAML configuration document.
func ParseYAML(content []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, xerrors.NewConfigError("failed to parse config file", err)
	}
	return &config, nil
}

// ParseTOML decodes a TOML configuration document. The document is decoded
// generically first and then mapped onto the YAML model, so string-or-pair
// fields behave the same in both formats.
func ParseTOML(content []byte) (*Config, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(content, &doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, xerrors.NewConfigError(fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, xerrors.NewConfigError("failed to parse config file", err)
	}

	intermediate, err := yaml.Marshal(doc)
	if err != nil {
		return nil, xerrors.NewConfigError("failed to convert TOML config", err)
	}
	return ParseYAML(intermediate)
}

// SerializeConfig renders the configuration as YAML.
func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}
