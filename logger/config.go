// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// ErrConfigNotValid reports invalid values in the environment or in a configuration file.
	ErrConfigNotValid = errors.New("logger configuration not valid")

	availableBackends = []string{BackendZap, BackendHCLog, BackendLogrus}
	availableFormats  = []string{FormatConsole, FormatJSON}
)

// Config holds the logger settings read from the environment or from a YAML file.
type Config struct {
	Level   string `env:"LOG_LEVEL" envDefault:"DEBUG" yaml:"level,omitempty"`
	UUID    string `env:"LOGGER_UUID" yaml:"uuid,omitempty"`
	Backend string `env:"LOG_BACKEND" envDefault:"zap" yaml:"backend,omitempty"`
	Format  string `env:"LOG_FORMAT" envDefault:"console" yaml:"format,omitempty"`
}

// LoadConfigFromEnv reads the configuration from the environment only.
func LoadConfigFromEnv() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig reads the configuration from the environment and then overlays
// the values found in the YAML file at path, if path is not empty.
func LoadConfig(path string) (*Config, error) {
	config, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotValid, err.Error())
	}

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading logger configuration %q: %w", path, err)
		}
		defer file.Close()

		if err := config.decode(file); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s", ErrConfigNotValid, err.Error())
	}
	return nil
}

// Validate reports every invalid value of the configuration.
func (c Config) Validate() error {
	errorsList := make([]string, 0)

	if _, err := ParseLevel(c.Level); err != nil {
		errorsList = append(errorsList, "LOG_LEVEL must be one of DEBUG, INFO, WARNING, ERROR, CRITICAL")
	}
	if !slices.Contains(availableBackends, c.Backend) {
		errorsList = append(errorsList, "LOG_BACKEND must be one of "+strings.Join(availableBackends, ", "))
	}
	if !slices.Contains(availableFormats, c.Format) {
		errorsList = append(errorsList, "LOG_FORMAT must be one of "+strings.Join(availableFormats, ", "))
	}

	if len(errorsList) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigNotValid, strings.Join(errorsList, "; "))
	}
	return nil
}

// Options converts the configuration into New options, building the backend on w.
func (c Config) Options(w io.Writer) ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	level, _ := ParseLevel(c.Level)
	backend, err := NewBackend(c.Backend, w)
	if err != nil {
		return nil, err
	}

	processors := DefaultProcessors()
	if c.Format == FormatJSON {
		processors = JSONProcessors()
	}

	return []Option{
		WithLevel(level),
		WithUUID(c.UUID),
		WithBackend(backend),
		WithProcessors(processors...),
	}, nil
}
