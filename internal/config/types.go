package config

import "time"

// Game defines the playable range and pacing of a game.
type Game struct {
	MinDisks      int           `yaml:"min_disks" env:"HANOI_MIN_DISKS"`
	MaxDisks      int           `yaml:"max_disks" env:"HANOI_MAX_DISKS"`
	DefaultDisks  int           `yaml:"default_disks" env:"HANOI_DEFAULT_DISKS"`
	MoveAnimation time.Duration `yaml:"move_animation" env:"HANOI_MOVE_ANIMATION"`
}

// Log configures the application logger.
type Log struct {
	Level string `yaml:"level" env:"HANOI_LOG_LEVEL"`
	// File receives log output. Empty means stderr for headless commands
	// and discard for the interactive board.
	File string `yaml:"file,omitempty" env:"HANOI_LOG_FILE"`
}

// Metrics configures the optional Prometheus endpoint.
type Metrics struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	Addr string `yaml:"addr,omitempty" env:"HANOI_METRICS_ADDR"`
}

// Config represents the .hanoi/config.yaml file.
type Config struct {
	Game    Game    `yaml:"game"`
	Log     Log     `yaml:"log"`
	Metrics Metrics `yaml:"metrics"`
}
