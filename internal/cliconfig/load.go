package cliconfig

import "fmt"

// Resolve layers the config file, .env and environment over cfg, in that
// order, skipping any key whose flag is in changed, then validates the result.
// An empty cfgPath means DefaultConfigPath; a missing file there is not an error.
func Resolve(cfg *Config, cfgPath string, changed map[string]bool) error {
	explicit := cfgPath != ""
	if !explicit {
		cfgPath = DefaultConfigPath()
	}

	if cfgPath != "" && (explicit || FileExists(cfgPath)) {
		fc, err := LoadFileConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	return cfg.Validate()
}
