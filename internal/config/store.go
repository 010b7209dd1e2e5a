package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/breppy/breppy/internal/log"
)

const (
	// AppName namespaces the per-user config directory
	AppName = "breppy"

	// FileName is the config file name inside the app directory
	FileName = "breppy_config.toml"
)

// DefaultPath returns the per-user config file location, e.g.
// ~/.config/breppy/breppy_config.toml on Linux or
// %LOCALAPPDATA%\breppy\breppy_config.toml on Windows.
func DefaultPath() (string, error) {
	dir, err := userConfigDir(runtime.GOOS, os.Getenv)
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// userConfigDir is os.UserConfigDir except on Windows, where the config
// stays in the non-roaming local app data directory.
func userConfigDir(goos string, getenv func(string) string) (string, error) {
	if goos != "windows" {
		return os.UserConfigDir()
	}

	dir := getenv("LOCALAPPDATA")
	if dir == "" {
		return "", errors.New("%LOCALAPPDATA% is not defined")
	}
	return dir, nil
}

// ResolvePath returns override as an absolute path, or DefaultPath when
// override is empty.
func ResolvePath(override string) (string, error) {
	if override == "" {
		return DefaultPath()
	}

	path, err := filepath.Abs(override)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// Load reads and decodes the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewConfigNotFoundError(path, err)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Unmarshal(data)
	if err != nil {
		return nil, NewConfigDecodeError(path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	log.Info("config").
		Str("path", path).
		Msg("Config saved")
	return nil
}

// LoadOrCreate loads the config at the resolved path. A missing file is
// replaced by the defaults, which are written to disk. A file that exists
// but does not decode is returned as an error.
func LoadOrCreate(override string) (*Config, error) {
	path, err := ResolvePath(override)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		log.Info("config").
			Str("path", path).
			Msg("Previous config found")
	}

	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = Default()
	if err := Save(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
