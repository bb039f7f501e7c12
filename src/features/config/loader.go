package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, the default configuration is used.
func Load(path string) (*Manager, error) {
	cfg := createDefaultConfig()

	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("Config file not found, using default configuration", "path", path)
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		// Values missing from the file keep their defaults.
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}

	// Override with environment variables if set
	if dir := os.Getenv("MUSICRESCUE_WORK_DIR"); dir != "" {
		cfg.Scan.WorkDir = dir
	}
	if index := os.Getenv("MUSICRESCUE_INDEX"); index != "" {
		cfg.Index.Path = index
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return NewManager(cfg), nil
}

// Default returns a Manager holding the default configuration.
func Default() *Manager {
	return NewManager(createDefaultConfig())
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// WriteDefault saves the default configuration to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(createDefaultConfig()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}
