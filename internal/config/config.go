// Package config loads the optional swtws defaults file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/blacktop/swtws/internal/speaker"
	"gopkg.in/yaml.v3"
)

// Config stores defaults loaded from ~/.config/swtws/config.yaml. Command
// line options always win over these values.
type Config struct {
	Hashtag     string        `yaml:"hashtag"`
	MaxLength   int           `yaml:"max_length"`
	Interval    time.Duration `yaml:"interval"`
	ImageOutput string        `yaml:"image_output"`
	Target      string        `yaml:"target"`
}

// Path returns the config file path.
func Path() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "swtws", "config.yaml"), nil
}

// Load reads the config file. Returns an empty config if it doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Target = strings.ToLower(strings.TrimSpace(cfg.Target))
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.ImageOutput, err = ExpandPath(cfg.ImageOutput)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Interval < 0 {
		errs = append(errs, errors.New("interval must not be negative"))
	}
	if c.MaxLength < 0 {
		errs = append(errs, errors.New("max_length must not be negative"))
	}
	if c.Target != "" && !slices.Contains(speaker.Targets, c.Target) {
		errs = append(errs, fmt.Errorf("target %q is not one of %s", c.Target, strings.Join(speaker.Targets, ", ")))
	}
	return errors.Join(errs...)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}
