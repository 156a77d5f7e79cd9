package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	DataFile          string `toml:"data_file"`
	Capacity          int    `toml:"capacity"`
	LogLevel          string `toml:"log_level"`
	Verify            *bool  `toml:"verify"`
	ExcludeSelfOnEdit *bool  `toml:"exclude_self_on_edit"`
	Debounce          string `toml:"debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.contactbook/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".contactbook", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("data-file", fc.DataFile, &cfg.DataFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setInt("capacity", fc.Capacity, &cfg.Capacity)
	s.setBool("verify", fc.Verify, &cfg.Verify)
	s.setBool("exclude-self-on-edit", fc.ExcludeSelfOnEdit, &cfg.ExcludeSelfOnEdit)

	return s.setDuration("debounce", fc.Debounce, &cfg.Debounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
