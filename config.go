package hithread

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/hithread/internal/logging"
	"github.com/viant/hithread/model/loop"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of a run. Fields omitted from a
// loaded document keep their DefaultConfig values.
type Config struct {
	Spawned loop.Loop       `json:"spawned" yaml:"spawned"`
	Main    loop.Loop       `json:"main" yaml:"main"`
	Logging *logging.Config `json:"logging,omitempty" yaml:"logging,omitempty"`
	Tracing TracingConfig   `json:"tracing" yaml:"tracing"`
}

// TracingConfig controls span export
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	File           string `json:"file,omitempty" yaml:"file,omitempty"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
}

// DefaultConfig returns the classic setup: the spawned loop counts 1..9, the
// main loop 1..4, both pausing 1ms after every line.
func DefaultConfig() *Config {
	return &Config{
		Spawned: *loop.Spawned(),
		Main:    *loop.Main(),
		Logging: logging.DefaultConfig(),
		Tracing: TracingConfig{
			ServiceName:    "hithread",
			ServiceVersion: Version,
		},
	}
}

// Validate returns the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	c.Spawned.Name = loop.SpawnedName
	c.Main.Name = loop.MainName
	if err := c.Spawned.Validate(); err != nil {
		return err
	}
	if err := c.Main.Validate(); err != nil {
		return err
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName must not be empty")
	}
	return nil
}

// LoadConfig reads a YAML document from any afs supported URL (file path,
// mem://, gs://, s3:// ...) on top of DefaultConfig.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %v: %w", URL, err)
	}
	return DecodeConfig(data)
}

// DecodeConfig decodes YAML bytes on top of DefaultConfig.
func DecodeConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
