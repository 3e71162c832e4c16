// Package config handles daemon settings. Key mappings are fixed and are not
// configurable.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

const appName = "goFullwidth"

// Config holds the complete daemon configuration.
type Config struct {
	// Devices selects the keyboards to intercept.
	Devices DevicesConfig `toml:"devices"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging"`
}

// DevicesConfig holds input device configuration.
type DevicesConfig struct {
	// Names lists evdev device names to grab. Empty means every keyboard.
	Names []string `toml:"names"`

	// UInputPath is the uinput character device.
	UInputPath string `toml:"uinput_path"`

	// VirtualName is the name of the virtual keyboard we create.
	VirtualName string `toml:"virtual_name"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File is appended to when set.
	File string `toml:"file"`

	// Console enables human-readable output on stderr.
	Console bool `toml:"console"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Devices: DevicesConfig{
			UInputPath:  "/dev/uinput",
			VirtualName: appName,
		},
		Logging: LoggingConfig{
			Level:   "info",
			File:    filepath.Join(stateDir(), appName+".log"),
			Console: true,
		},
	}
}

// Path returns the default config file location.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.toml")
}

func stateDir() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, appName)
}

// Load reads the file at path over the defaults. A missing file is not an
// error. Environment overrides are applied and the result validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("parse %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalid, path, undecoded)
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies GOFULLWIDTH_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("GOFULLWIDTH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv("GOFULLWIDTH_LOG_FILE"); ok {
		c.Logging.File = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Devices.UInputPath == "" {
		return fmt.Errorf("%w: devices.uinput_path is empty", ErrInvalid)
	}
	if strings.TrimSpace(c.Devices.VirtualName) == "" {
		return fmt.Errorf("%w: devices.virtual_name is empty", ErrInvalid)
	}
	for _, name := range c.Devices.Names {
		if name == c.Devices.VirtualName {
			return fmt.Errorf("%w: devices.names contains our own virtual keyboard %q", ErrInvalid, name)
		}
	}
	return nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (zerolog.Level, error) {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
}
