package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// document maps the YAML sections onto the global configuration instances.
type document struct {
	Window    *Config          `yaml:"window"`
	Level     *LevelConfig     `yaml:"level"`
	Physics   *PhysicsConfig   `yaml:"physics"`
	Player    *PlayerConfig    `yaml:"player"`
	Enemy     *EnemyConfig     `yaml:"enemy"`
	Streaming *StreamingConfig `yaml:"streaming"`
	Logging   *LoggingConfig   `yaml:"logging"`
}

// Load applies configuration with priority: defaults < file < flags.
// An empty path skips the file.
func Load(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if path != "" {
		if err := loadFromFile(path); err != nil {
			return fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags()
	return Validate()
}

// loadFromFile overlays a YAML file on the current values. Keys missing from
// the file keep their defaults.
func loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Parse(data)
}

// Parse overlays YAML data on the current values.
func Parse(data []byte) error {
	doc := document{
		Window:    C,
		Level:     &Level,
		Physics:   &Physics,
		Player:    &Player,
		Enemy:     &Enemy,
		Streaming: &Streaming,
		Logging:   &Logging,
	}
	return yaml.Unmarshal(data, &doc)
}

// Validate rejects values the simulation cannot run with.
func Validate() error {
	switch Physics.Backend {
	case BackendResolv, BackendChipmunk:
	default:
		return fmt.Errorf("unknown physics backend %q", Physics.Backend)
	}
	if Physics.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", Physics.TickRate)
	}
	if Level.CollisionLayer < 0 {
		return fmt.Errorf("collision layer must not be negative, got %d", Level.CollisionLayer)
	}
	if Streaming.FadeDuration < 0 {
		return fmt.Errorf("fade duration must not be negative, got %v", Streaming.FadeDuration)
	}
	return nil
}
