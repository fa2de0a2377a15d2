package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thruflo/hanoi/internal/logging"
)

// Default values for Config.
const (
	DefaultMinDisks      = 3
	DefaultMaxDisks      = 10
	DefaultDisks         = 3
	DefaultMoveAnimation = 300 * time.Millisecond
	DefaultLogLevel      = "warn"

	// HardMaxDisks bounds max_disks; the solver history grows as 2^n.
	HardMaxDisks = 20
)

// DefaultGame returns game settings with sensible default values.
func DefaultGame() Game {
	return Game{
		MinDisks:      DefaultMinDisks,
		MaxDisks:      DefaultMaxDisks,
		DefaultDisks:  DefaultDisks,
		MoveAnimation: DefaultMoveAnimation,
	}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Game: DefaultGame(),
		Log:  Log{Level: DefaultLogLevel},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Dir returns the hanoi configuration directory under basePath.
func Dir(basePath string) string {
	return filepath.Join(basePath, ".hanoi")
}

// LoadConfig reads .hanoi/config.yaml and .hanoi/.env from the given base
// path, then applies HANOI_* overrides from the process environment.
// Missing files are not an error.
func LoadConfig(basePath string) (*Config, error) {
	return LoadConfigWithEnv(basePath, env.ToMap(os.Environ()))
}

// LoadConfigWithEnv is LoadConfig with an explicit environment.
// Values in environ take precedence over the .env file.
func LoadConfigWithEnv(basePath string, environ map[string]string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(Dir(basePath), "config.yaml")
	if err := readYAML(configPath, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	dotenv, err := LoadEnvFile(basePath)
	if err != nil {
		return nil, err
	}

	if err := applyEnv(&cfg, dotenv, environ); err != nil {
		return nil, err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile reads the YAML file at path and applies environment
// overrides. Unlike LoadConfig, the file must exist.
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := readYAML(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}

	if err := applyEnv(&cfg, nil, env.ToMap(os.Environ())); err != nil {
		return nil, err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// LoadEnvFile parses .hanoi/.env into a map of key-value pairs.
// A missing file yields an empty map.
func LoadEnvFile(basePath string) (map[string]string, error) {
	envPath := filepath.Join(Dir(basePath), ".env")

	values, err := godotenv.Read(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return values, nil
}

// applyEnv overlays HANOI_* variables onto cfg. environ wins over dotenv.
func applyEnv(cfg *Config, dotenv, environ map[string]string) error {
	merged := make(map[string]string, len(dotenv)+len(environ))
	for k, v := range dotenv {
		merged[k] = v
	}
	for k, v := range environ {
		merged[k] = v
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: merged}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if err := ValidateGame(&cfg.Game); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: "must be one of debug, info, warn, error"}
	}
	return nil
}

// ValidateGame checks the disk range and animation duration.
func ValidateGame(g *Game) error {
	if g.MinDisks < 1 {
		return ValidationError{Field: "game.min_disks", Message: "must be positive"}
	}
	if g.MaxDisks < g.MinDisks {
		return ValidationError{Field: "game.max_disks", Message: "must not be less than min_disks"}
	}
	if g.MaxDisks > HardMaxDisks {
		return ValidationError{Field: "game.max_disks", Message: fmt.Sprintf("must not exceed %d", HardMaxDisks)}
	}
	if g.DefaultDisks < g.MinDisks || g.DefaultDisks > g.MaxDisks {
		return ValidationError{Field: "game.default_disks", Message: "must be between min_disks and max_disks"}
	}
	if g.MoveAnimation < 0 {
		return ValidationError{Field: "game.move_animation", Message: "must not be negative"}
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
