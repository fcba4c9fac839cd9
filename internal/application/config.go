package application

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-xformgate/infrastructure/arbitration"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// Config is the complete configuration surface of the arbitration engine:
// the gate thresholds and the strategy descriptors. Everything the gate
// compares against is configuration, never a hardcoded constant, so that
// threshold policy can be tested and tuned without code changes.
type Config struct {
	// Gate holds the quality-gate thresholds.
	Gate arbitration.GateConfig `yaml:"gate" validate:"required"`

	// Strategies lists the arbitration variants to instantiate.
	Strategies []StrategyConfig `yaml:"strategies" validate:"required,min=1,dive"`
}

// StrategyConfig configures one arbitration strategy variant.
type StrategyConfig struct {
	// Name selects the strategy variant.
	Name string `yaml:"name" validate:"required,oneof=surface_boundary intensity_boundary"`

	// DOF is the degrees of freedom of the refined registration. Consumed
	// only for logging and labeling.
	DOF int `yaml:"dof" validate:"required,oneof=6 9 12"`
}

// DefaultConfig returns the production configuration: default gate
// thresholds and both strategy variants at 6 degrees of freedom.
func DefaultConfig() Config {
	return Config{
		Gate: arbitration.DefaultGateConfig(),
		Strategies: []StrategyConfig{
			{Name: StrategySurfaceBoundary, DOF: 6},
			{Name: StrategyIntensityBoundary, DOF: 6},
		},
	}
}

// ParseConfig decodes and validates a YAML configuration document.
// Fields omitted from the document keep their DefaultConfig values.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads, decodes, and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}
