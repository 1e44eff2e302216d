package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/testpilot-dev/testpilot/filter"
	"github.com/testpilot-dev/testpilot/types"
)

// DefaultTestRoot is the conventional test root used when neither an
// explicit path nor a pre-supplied configuration provides one.
const DefaultTestRoot = "./tests"

// Config is the final engine configuration handed to a test engine.
// Optional fields left empty in a pre-supplied configuration are filled
// in by Build.
type Config struct {
	Path        string          `yaml:"path,omitempty"`
	IncludeTags []string        `yaml:"include_tags,omitempty"`
	ExcludeTags []string        `yaml:"exclude_tags,omitempty"`
	Verbosity   types.Verbosity `yaml:"-"`
	PassThru    bool            `yaml:"-"`
	GoBinary    string          `yaml:"go_binary,omitempty"`
	Timeout     time.Duration   `yaml:"timeout,omitempty"`
}

// UnmarshalYAML decodes a pre-built engine configuration, accepting
// durations in time.ParseDuration notation.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Path        string   `yaml:"path"`
		IncludeTags []string `yaml:"include_tags"`
		ExcludeTags []string `yaml:"exclude_tags"`
		GoBinary    string   `yaml:"go_binary"`
		Timeout     string   `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.Path = raw.Path
	c.IncludeTags = raw.IncludeTags
	c.ExcludeTags = raw.ExcludeTags
	c.GoBinary = raw.GoBinary
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// LoadConfig reads a pre-built engine configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config %s: %w", path, err)
	}
	return &cfg, nil
}

// Build merges an optional pre-supplied configuration with the explicit
// path, the effective tag filter and the requested verbosity into one
// final configuration. The merge is pure: pre is never mutated.
//
// Precedence: an explicit path always wins over a pre-supplied one; tag
// filters are applied only when non-empty and never erase pre-supplied
// filters otherwise. The result always captures full results.
func Build(pre *Config, path string, f filter.EffectiveTagFilter, verbosity types.Verbosity) *Config {
	cfg := &Config{}
	if pre != nil {
		*cfg = *pre
	}

	if path != "" {
		cfg.Path = path
	}
	if cfg.Path == "" {
		cfg.Path = DefaultTestRoot
	}

	if len(f.Include) > 0 {
		cfg.IncludeTags = f.Include
	}
	if len(f.Exclude) > 0 {
		cfg.ExcludeTags = f.Exclude
	}

	if cfg.GoBinary == "" {
		cfg.GoBinary = "go"
	}

	// Pass-through capture is not negotiable: the pipeline needs the full
	// per-test record stream to build a result model.
	cfg.PassThru = true
	cfg.Verbosity = verbosity

	return cfg
}
