package cliconfig

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Variables already set are kept; missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnvConfig applies configuration from environment variables (CONTACTBOOK_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("data-file", os.Getenv("CONTACTBOOK_DATA_FILE"), &cfg.DataFile)
	s.setString("log-level", os.Getenv("CONTACTBOOK_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("capacity", os.Getenv("CONTACTBOOK_CAPACITY"), &cfg.Capacity); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("CONTACTBOOK_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("verify", os.Getenv("CONTACTBOOK_VERIFY"), &cfg.Verify)
	s.setBoolFromString("exclude-self-on-edit", os.Getenv("CONTACTBOOK_EXCLUDE_SELF_ON_EDIT"), &cfg.ExcludeSelfOnEdit)

	return nil
}
