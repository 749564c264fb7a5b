package runner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/qcheck"
	"github.com/gnolang/qcheck/scanner"
)

// DefaultConfigPath is where `qcheck init` writes and the CLI reads by default.
const DefaultConfigPath = ".qcheck.yaml"

// FieldList is the allow-list as written in the configuration file. A nil
// list is left out of the file, while an empty one is kept as "fields: []".
type FieldList []string

// IsZero lets yaml's omitempty tell a missing list from an empty one.
func (l FieldList) IsZero() bool {
	return l == nil
}

// Config represents the overall configuration.
type Config struct {
	Name string `yaml:"name"`
	// Fields is the allow-list. Leave it out to skip the field check; an
	// explicit empty list rejects every field:value pair.
	Fields FieldList `yaml:"fields,omitempty"`
	// MaxQueryLength rejects longer queries before validation. 0 disables it.
	MaxQueryLength int `yaml:"max_query_length"`
	// Extensions selects query files when a directory is given.
	Extensions []string `yaml:"extensions"`
	// Ignore lists checks to skip, including the "length" limit.
	Ignore []string `yaml:"ignore,omitempty"`
}

// ignores reports whether rule is listed in Ignore.
func (c Config) ignores(rule string) bool {
	for _, name := range c.Ignore {
		if name == rule {
			return true
		}
	}
	return false
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Name:       "qcheck",
		Extensions: append([]string(nil), scanner.DefaultExtensions...),
	}
}

// FieldSet returns the allow-list, or nil when none is configured.
func (c Config) FieldSet() qcheck.FieldSet {
	if c.Fields == nil {
		return nil
	}
	return qcheck.NewFieldSet(c.Fields...)
}

// NewValidator builds a validator from the configuration.
func (c Config) NewValidator(logger *zap.Logger) *qcheck.Validator {
	var ignored []string
	for _, name := range c.Ignore {
		// the length limit belongs to the runner
		if name != RuleLength {
			ignored = append(ignored, name)
		}
	}
	return qcheck.New(
		qcheck.WithFields(c.FieldSet()),
		qcheck.WithLogger(logger),
		qcheck.WithIgnoredRules(ignored...),
	)
}

// LoadConfig reads a YAML configuration file. A missing file yields
// DefaultConfig; keys left out of the file keep their default values.
func LoadConfig(configurationPath string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(configurationPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("error opening config %s: %w", configurationPath, err)
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing config %s: %w", configurationPath, err)
	}

	return config, nil
}

// WriteConfig writes config as YAML to configurationPath, replacing any
// existing file.
func WriteConfig(configurationPath string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
