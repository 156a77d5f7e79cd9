package cliconfig

import (
	"testing"
	"time"

	"github.com/bft-labs/contactbook/pkg/log"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataFile != DefaultDataFile {
		t.Errorf("DataFile = %v, want %v", cfg.DataFile, DefaultDataFile)
	}
	if cfg.Capacity != 100 {
		t.Errorf("Capacity = %v, want 100", cfg.Capacity)
	}
	if cfg.Level() != log.LevelWarn {
		t.Errorf("Level = %v, want warn", cfg.Level())
	}
	if cfg.Verify || cfg.ExcludeSelfOnEdit {
		t.Errorf("Verify/ExcludeSelfOnEdit should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "missing data file", mutate: func(c *Config) { c.DataFile = "" }, wantErr: true},
		{name: "zero capacity", mutate: func(c *Config) { c.Capacity = 0 }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "upper case level", mutate: func(c *Config) { c.LogLevel = "DEBUG" }},
		{name: "zero debounce", mutate: func(c *Config) { c.Debounce = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LevelFallback(t *testing.T) {
	cfg := Config{LogLevel: "nonsense"}
	if cfg.Level() != log.LevelWarn {
		t.Errorf("Level() = %v, want warn", cfg.Level())
	}
	cfg.LogLevel = "info"
	if cfg.Level() != log.LevelInfo {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}

func TestConfigSetter(t *testing.T) {
	s := newConfigSetter(map[string]bool{"capacity": true})

	n := 5
	s.setInt("capacity", 10, &n)
	if n != 5 {
		t.Errorf("changed flag overwritten: %d", n)
	}

	var d time.Duration
	if err := s.setDuration("debounce", "bogus", &d); err == nil {
		t.Error("setDuration() expected error for bogus duration")
	}

	str := "keep"
	s.setString("data-file", "", &str)
	if str != "keep" {
		t.Errorf("empty value overwrote string: %q", str)
	}
}
