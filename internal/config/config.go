package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file name (without extension) searched for
	// in the working directory and the install root.
	FileName = "kraken"
	// FileExt is the config file extension.
	FileExt = "toml"
	// EnvPrefix prefixes environment overrides, e.g. KRAKEN_CLI_BUILD_ROOT.
	EnvPrefix = "KRAKEN_CLI"
)

// Config represents the launcher configuration
type Config struct {
	// InstallRoot is the directory the launcher is installed in. It is
	// detected at runtime and never read from or written to disk.
	InstallRoot string `mapstructure:"-" toml:"-"`

	// BuildRoot holds app/ and lib/. Relative values are resolved
	// against InstallRoot.
	BuildRoot string `mapstructure:"build_root" toml:"build_root"`

	// AppBundleName names the macOS .app bundle and its inner executable.
	AppBundleName string `mapstructure:"app_bundle_name" toml:"app_bundle_name"`

	// LinuxExecutable is the app shell file name under <BuildRoot>/app on Linux.
	LinuxExecutable string `mapstructure:"linux_executable" toml:"linux_executable"`

	// LibraryDir overrides <BuildRoot>/lib when set.
	LibraryDir string `mapstructure:"library_dir" toml:"library_dir,omitempty"`

	// KeepStagedSource leaves inline --source files on disk after the app exits.
	KeepStagedSource bool `mapstructure:"keep_staged_source" toml:"keep_staged_source"`

	Log LogConfig `mapstructure:"log" toml:"log"`

	Release ReleaseConfig `mapstructure:"release" toml:"release"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"` // debug, info, warn, error
}

// ReleaseConfig contains release pipeline settings
type ReleaseConfig struct {
	Runner string   `mapstructure:"runner" toml:"runner"`
	Dir    string   `mapstructure:"dir" toml:"dir,omitempty"`
	Tasks  []string `mapstructure:"tasks" toml:"tasks"`
}

// DefaultReleaseTasks is the release-binary task order.
var DefaultReleaseTasks = []string{
	"sdk-clean",
	"compile-polyfill",
	"build-darwin-kraken-lib-release",
	"build-ios-kraken-lib-release",
	"build-android-kraken-lib-release",
}

// DefaultConfig returns the default configuration
func DefaultConfig(installRoot string) *Config {
	return &Config{
		InstallRoot:      installRoot,
		BuildRoot:        "build",
		AppBundleName:    "Kraken",
		LinuxExecutable:  "kraken",
		KeepStagedSource: false,
		Log: LogConfig{
			Level: "info",
		},
		Release: ReleaseConfig{
			Runner: "npx gulp",
			Tasks:  append([]string(nil), DefaultReleaseTasks...),
		},
	}
}

// Load reads configuration from the given path. With an empty path,
// kraken.toml is looked up in the working directory and then in
// installRoot; a missing file yields the defaults. Environment variables
// prefixed with KRAKEN_CLI_ override both.
func Load(path, installRoot string) (*Config, error) {
	defaults := DefaultConfig(installRoot)

	v := viper.New()
	v.SetDefault("build_root", defaults.BuildRoot)
	v.SetDefault("app_bundle_name", defaults.AppBundleName)
	v.SetDefault("linux_executable", defaults.LinuxExecutable)
	v.SetDefault("library_dir", defaults.LibraryDir)
	v.SetDefault("keep_staged_source", defaults.KeepStagedSource)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("release.runner", defaults.Release.Runner)
	v.SetDefault("release.dir", defaults.Release.Dir)
	v.SetDefault("release.tasks", defaults.Release.Tasks)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if installRoot != "" {
			v.AddConfigPath(installRoot)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{InstallRoot: installRoot}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks fields that have no usable zero value.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppBundleName) == "" {
		return errors.New("config: app_bundle_name must not be empty")
	}
	if strings.TrimSpace(c.LinuxExecutable) == "" {
		return errors.New("config: linux_executable must not be empty")
	}
	if strings.ContainsRune(c.LinuxExecutable, filepath.Separator) {
		return fmt.Errorf("config: linux_executable %q must be a file name", c.LinuxExecutable)
	}
	return nil
}

// BuildPath returns the absolute build root.
func (c *Config) BuildPath() string {
	return c.resolve(c.BuildRoot)
}

// LibraryPath returns the absolute directory exported as KRAKEN_LIBRARY_PATH.
func (c *Config) LibraryPath() string {
	if c.LibraryDir != "" {
		return c.resolve(c.LibraryDir)
	}
	return filepath.Join(c.BuildPath(), "lib")
}

// ReleaseDir returns the working directory for release tasks.
func (c *Config) ReleaseDir() string {
	if c.Release.Dir != "" {
		return c.resolve(c.Release.Dir)
	}
	return c.InstallRoot
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.InstallRoot == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(c.InstallRoot, p)
}

// Save writes configuration to the given path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// InstallRoot returns the directory above the one holding the running
// executable, following symlinks: <root>/bin/kraken yields <root>.
func InstallRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}

	binDir := filepath.Dir(exe)
	return filepath.Dir(binDir), nil
}
