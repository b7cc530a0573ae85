package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-project override file.
const LocalConfigFileName = ".san.toml"

// LocalConfig holds per-project overrides from .san.toml.
// Pointer fields and zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	HerokuBin string      `toml:"heroku_bin"`
	AppsFile  string      `toml:"apps_file"`
	Deploy    LocalDeploy `toml:"deploy"`
}

// LocalDeploy holds local deploy overrides
type LocalDeploy struct {
	Ref         string `toml:"ref"`
	Force       *bool  `toml:"force"`
	Maintenance *bool  `toml:"maintenance"`
}

// LoadLocal reads .san.toml from dir.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if err := validateRef(local.Deploy.Ref, "deploy.ref"); err != nil {
		return nil, fmt.Errorf("%w in %s", err, configFile)
	}

	return &local, nil
}

// LoadWithLocal loads the global config and overlays .san.toml from workDir.
// Environment overrides are applied last.
func LoadWithLocal(workDir string) (Config, error) {
	global, err := Load()
	if err != nil {
		return global, err
	}
	local, err := LoadLocal(workDir)
	if err != nil {
		return global, err
	}
	merged := MergeLocal(&global, local)
	applyEnv(merged)
	return *merged, nil
}
