package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	root := t.TempDir()
	t.Chdir(t.TempDir())

	cfg, err := Load("", root)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if got, want := cfg.BuildPath(), filepath.Join(root, "build"); got != want {
		t.Errorf("BuildPath() = %q, want %q", got, want)
	}
	if got, want := cfg.LibraryPath(), filepath.Join(root, "build", "lib"); got != want {
		t.Errorf("LibraryPath() = %q, want %q", got, want)
	}
	if cfg.AppBundleName != "Kraken" {
		t.Errorf("AppBundleName = %q, want %q", cfg.AppBundleName, "Kraken")
	}
	if cfg.LinuxExecutable != "kraken" {
		t.Errorf("LinuxExecutable = %q, want %q", cfg.LinuxExecutable, "kraken")
	}
	if cfg.KeepStagedSource {
		t.Error("KeepStagedSource = true, want false")
	}
	if !slices.Equal(cfg.Release.Tasks, DefaultReleaseTasks) {
		t.Errorf("Release.Tasks = %v, want %v", cfg.Release.Tasks, DefaultReleaseTasks)
	}
	if got := cfg.ReleaseDir(); got != root {
		t.Errorf("ReleaseDir() = %q, want %q", got, root)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `
build_root = "/opt/kraken/build"
library_dir = "libs"
keep_staged_source = true

[log]
level = "debug"

[release]
runner = "yarn gulp"
tasks = ["a", "b"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, root)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if got := cfg.BuildPath(); got != "/opt/kraken/build" {
		t.Errorf("BuildPath() = %q, want %q", got, "/opt/kraken/build")
	}
	if got, want := cfg.LibraryPath(), filepath.Join(root, "libs"); got != want {
		t.Errorf("LibraryPath() = %q, want %q", got, want)
	}
	if !cfg.KeepStagedSource {
		t.Error("KeepStagedSource = false, want true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Release.Runner != "yarn gulp" {
		t.Errorf("Release.Runner = %q, want %q", cfg.Release.Runner, "yarn gulp")
	}
	if !slices.Equal(cfg.Release.Tasks, []string{"a", "b"}) {
		t.Errorf("Release.Tasks = %v, want [a b]", cfg.Release.Tasks)
	}
	// Unset keys keep their defaults.
	if cfg.AppBundleName != "Kraken" {
		t.Errorf("AppBundleName = %q, want %q", cfg.AppBundleName, "Kraken")
	}
}

func TestLoad_SearchesInstallRoot(t *testing.T) {
	root := t.TempDir()
	t.Chdir(t.TempDir())

	if err := os.WriteFile(filepath.Join(root, "kraken.toml"), []byte(`linux_executable = "kraken-shell"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", root)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LinuxExecutable != "kraken-shell" {
		t.Errorf("LinuxExecutable = %q, want %q", cfg.LinuxExecutable, "kraken-shell")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	t.Chdir(t.TempDir())
	t.Setenv("KRAKEN_CLI_APP_BUNDLE_NAME", "KrakenDev")
	t.Setenv("KRAKEN_CLI_LOG_LEVEL", "warn")

	if err := os.WriteFile(filepath.Join(root, "kraken.toml"), []byte(`app_bundle_name = "FromFile"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", root)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.AppBundleName != "KrakenDev" {
		t.Errorf("AppBundleName = %q, want %q", cfg.AppBundleName, "KrakenDev")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), t.TempDir())
	if err == nil {
		t.Fatal("Load() expected error for missing explicit file")
	}
}

func TestLoad_InvalidExecutableName(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(`linux_executable = "bin/kraken"`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "linux_executable") {
		t.Fatalf("Load() error = %v, want linux_executable validation error", err)
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(t.TempDir(), "nested", "kraken.toml")

	cfg := DefaultConfig(root)
	cfg.AppBundleName = "KrakenNightly"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("saved config is not valid TOML: %v", err)
	}
	if _, ok := decoded["InstallRoot"]; ok {
		t.Error("InstallRoot must not be written to disk")
	}

	loaded, err := Load(path, root)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if loaded.AppBundleName != "KrakenNightly" {
		t.Errorf("AppBundleName = %q, want %q", loaded.AppBundleName, "KrakenNightly")
	}
}
