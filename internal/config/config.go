package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	Storage   StorageConfig `yaml:"storage"`
	ExportDir string        `yaml:"export_dir,omitempty"`
	LogFile   string        `yaml:"log_file,omitempty"`

	// path is where the config was loaded from, and where Save writes.
	path string
}

type StorageConfig struct {
	// Backend is "file", "sqlite" or "memory".
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "gemini",
		Model:    "gemini-2.5-pro",
		Storage: StorageConfig{
			Backend: "file",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "promptmaster"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at the default path. It returns nil, nil when no
// config has been written yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. It returns nil, nil when the file
// does not exist. Missing fields are filled from DefaultConfig.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.path = path

	return cfg, nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() (string, error) {
	if c.path != "" {
		return c.path, nil
	}
	return ConfigPath()
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

func (c *Config) Save() error {
	path, err := c.Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// dir is the directory holding the config file; data files live next to it.
func (c *Config) dir() (string, error) {
	path, err := c.Path()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// StoragePath resolves the storage location, defaulting to a data
// directory (file backend) or database file (sqlite) next to the config.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return expandHome(c.Storage.Path)
	}
	dir, err := c.dir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == "sqlite" {
		return filepath.Join(dir, "promptmaster.db"), nil
	}
	return filepath.Join(dir, "data"), nil
}

// LogPath resolves the log file location.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return expandHome(c.LogFile)
	}
	dir, err := c.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "promptmaster.log"), nil
}

// ExportPath resolves the directory library backups are written to; the
// working directory by default.
func (c *Config) ExportPath() (string, error) {
	if c.ExportDir != "" {
		return expandHome(c.ExportDir)
	}
	return os.Getwd()
}

func expandHome(path string) (string, error) {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
