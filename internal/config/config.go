package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project configuration file looked up at the
// tree root.
const FileName = ".vprop.yaml"

// Config holds the project configuration. Every field has an explicit default
// so an absent file behaves the same as an empty one.
type Config struct {
	// Extensions are the file extensions considered during propagation.
	Extensions []string `yaml:"extensions,omitempty"`
	// ExcludeDirs are directory names skipped during discovery.
	ExcludeDirs []string `yaml:"exclude_dirs,omitempty"`
	// Readme is the file holding the benchmark block rewritten by `vp bench --update`.
	Readme string `yaml:"readme,omitempty"`
	// PreRun is an executable (with args) run before a propagation starts,
	// e.g. a code generator.
	PreRun []string `yaml:"pre_run,omitempty"`
	// PostRun is an executable (with args) run after a propagation that
	// modified files, e.g. a formatter.
	PostRun []string `yaml:"post_run,omitempty"`
	// Features are the feature-flag sets used to generate the CI workflow
	// matrix.
	Features []FeatureSet `yaml:"features,omitempty"`
}

// FeatureSet names one feature-flag combination checked in CI.
type FeatureSet struct {
	Name  string   `yaml:"name"`
	Flags []string `yaml:"flags"`
}

// Load reads configuration from a YAML file with strict decoding.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// LoadDir loads the project config from dir, falling back to defaults when no
// config file exists.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = &Config{}
			cfg.setDefaults()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".rs", ".toml"}
	}
	if len(c.ExcludeDirs) == 0 {
		c.ExcludeDirs = []string{"target"}
	}
	if c.Readme == "" {
		c.Readme = "Readme.md"
	}
}
