package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration. Gameplay tuning lives in
// internal/loop/config; this covers what differs between deployments.
type Config struct {
	Game    GameConfig    `toml:"game"`
	Paths   PathsConfig   `toml:"paths"`
	Logging LoggingConfig `toml:"logging"`
	SSH     SSHConfig     `toml:"ssh"`
}

type GameConfig struct {
	Width      float64 `toml:"width"`  // Logical playfield width
	Height     float64 `toml:"height"` // Logical playfield height
	FPS        int     `toml:"fps"`
	LevelsFile string  `toml:"levels_file"` // Optional YAML level table
}

type PathsConfig struct {
	Settings string `toml:"settings"`
	Assets   string `toml:"assets"` // Directory holding shoot.wav, bang.wav, warp.wav
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // Empty logs to stderr
}

type SSHConfig struct {
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	HostKey string `toml:"host_key"`
}

// Load reads a TOML file over the defaults. A missing file yields the
// defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultLogFile receives the local game's logs when no file is configured.
const DefaultLogFile = "rockstorm.log"

// WithFile returns c logging to path when no file is configured.
func (c LoggingConfig) WithFile(path string) LoggingConfig {
	if c.File == "" {
		c.File = path
	}
	return c
}

// ApplyEnv overrides the SSH listener settings from the environment.
func (c *Config) ApplyEnv() {
	c.SSH.Host = GetEnv("SSH_HOST", c.SSH.Host)
	c.SSH.Port = GetEnv("SSH_PORT", c.SSH.Port)
	c.SSH.HostKey = GetEnv("SSH_HOST_KEY", c.SSH.HostKey)
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Width:  800,
			Height: 600,
			FPS:    60,
		},
		Paths: PathsConfig{
			Settings: "settings.txt",
			Assets:   "assets",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		SSH: SSHConfig{
			Host:    "::",
			Port:    "2222",
			HostKey: "/app/keys/host_key",
		},
	}
}
