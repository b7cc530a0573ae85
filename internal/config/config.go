package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/herokusan/san/internal/storage"
)

// DeployConfig holds push and deploy settings
type DeployConfig struct {
	Ref         string `toml:"ref"`
	Force       bool   `toml:"force"`
	Maintenance bool   `toml:"maintenance"`
}

// Config holds the san preferences
type Config struct {
	HerokuBin string       `toml:"heroku_bin"`
	AppsFile  string       `toml:"apps_file"`
	GitHost   string       `toml:"git_host"`
	Deploy    DeployConfig `toml:"deploy"`
}

// Defaults
const (
	DefaultHerokuBin = "heroku"
	DefaultAppsFile  = "config/heroku.yml"
	DefaultGitHost   = "heroku.com"
	DefaultDeployRef = "HEAD"
)

// Environment variable overrides
const (
	EnvAppsFile  = "SAN_APPS_FILE"
	EnvHerokuBin = "SAN_HEROKU_BIN"
)

// Default returns the default configuration
func Default() Config {
	return Config{
		HerokuBin: DefaultHerokuBin,
		AppsFile:  DefaultAppsFile,
		GitHost:   DefaultGitHost,
		Deploy: DeployConfig{
			Ref: DefaultDeployRef,
		},
	}
}

// AppsPath resolves the apps file against workDir.
func (c *Config) AppsPath(workDir string) string {
	if filepath.IsAbs(c.AppsFile) || workDir == "" {
		return c.AppsFile
	}
	return filepath.Join(workDir, c.AppsFile)
}

// configPath returns the path to the global config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "san", "config.toml"), nil
}

// Load reads ~/.config/san/config.toml and applies environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		cfg := Default()
		applyEnv(&cfg)
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg, err := loadFile(path)
	applyEnv(&cfg)
	return cfg, err
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	// Use defaults for values explicitly set to ""
	if cfg.HerokuBin == "" {
		cfg.HerokuBin = DefaultHerokuBin
	}
	if cfg.AppsFile == "" {
		cfg.AppsFile = DefaultAppsFile
	}
	if cfg.GitHost == "" {
		cfg.GitHost = DefaultGitHost
	}
	if cfg.Deploy.Ref == "" {
		cfg.Deploy.Ref = DefaultDeployRef
	}

	// Expand ~ in apps_file (shell doesn't expand in config files)
	expanded, err := expandPath(cfg.AppsFile)
	if err != nil {
		return Default(), fmt.Errorf("expand apps_file: %w", err)
	}
	cfg.AppsFile = expanded

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAppsFile); v != "" {
		cfg.AppsFile = v
	}
	if v := os.Getenv(EnvHerokuBin); v != "" {
		cfg.HerokuBin = v
	}
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

type ctxKey struct{}
type workDirKey struct{}

// WithConfig attaches the effective config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx, or defaults.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// WithWorkDir attaches the working directory to the context.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory stored in ctx.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok {
		return dir
	}
	return ""
}

const defaultConfig = `# san configuration

# heroku CLI executable
# heroku_bin = "heroku"

# Apps file, relative to the directory san runs in
# apps_file = "config/heroku.yml"

# Host used to derive git remotes: git@<git_host>:<app>.git
# git_host = "heroku.com"

# [deploy]
# ref = "HEAD"          # local ref pushed to each app's master branch
# force = false         # force-push by default
# maintenance = false   # turn maintenance on around migrations during deploy
`

// Init creates a default config file at ~/.config/san/config.toml
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}
	return path, InitFile(path, force)
}

// InitFile writes the default config to path.
func InitFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	return storage.WriteFile(path, []byte(defaultConfig), 0644)
}
