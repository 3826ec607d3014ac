package launcher

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Environment variables read by the Kraken app shell.
const (
	EnvLibraryPath        = "KRAKEN_LIBRARY_PATH"
	EnvJSLog              = "ENABLE_KRAKEN_JS_LOG"
	EnvPerformanceOverlay = "KRAKEN_ENABLE_PERFORMANCE_OVERLAY"
	EnvDebugLayout        = "KRAKEN_ENABLE_DEBUG"
	EnvInstructPath       = "KRAKEN_INSTRUCT_PATH"
	EnvBundlePath         = "KRAKEN_BUNDLE_PATH"
	EnvBundleURL          = "KRAKEN_BUNDLE_URL"
)

// Env is a process environment keyed by variable name.
type Env map[string]string

// EnvFromList parses KEY=VALUE entries as returned by os.Environ.
// Entries without '=' are ignored; later duplicates win.
func EnvFromList(list []string) Env {
	env := make(Env, len(list))
	for _, kv := range list {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// List returns the environment as sorted KEY=VALUE entries.
func (e Env) List() []string {
	keys := slices.Sorted(maps.Keys(e))
	list := make([]string, 0, len(keys))
	for _, k := range keys {
		list = append(list, k+"="+e[k])
	}
	return list
}

// EnvPaths carries the filesystem locations BuildEnv needs.
type EnvPaths struct {
	// LibraryDir is exported as KRAKEN_LIBRARY_PATH.
	LibraryDir string
	// WorkDir anchors relative bundle and instruct paths.
	WorkDir string
	// StagedSource is the temp file holding inline source, if any.
	StagedSource string
}

// BuildEnv returns the child environment for req. base is not modified.
// A disabled flag or an unselected bundle source leaves its variable
// absent, even if base had it.
func BuildEnv(base Env, req *Request, paths EnvPaths) Env {
	env := maps.Clone(base)
	if env == nil {
		env = Env{}
	}

	for _, k := range []string{
		EnvJSLog, EnvPerformanceOverlay, EnvDebugLayout,
		EnvInstructPath, EnvBundlePath, EnvBundleURL,
	} {
		delete(env, k)
	}

	env[EnvLibraryPath] = absolute(paths.WorkDir, paths.LibraryDir)

	if req.Flags.EnableJSLog {
		env[EnvJSLog] = "true"
	}
	if req.Flags.ShowPerformanceMonitor {
		env[EnvPerformanceOverlay] = "true"
	}
	if req.Flags.DebugLayout {
		env[EnvDebugLayout] = "true"
	}

	if req.InstructPath != "" {
		env[EnvInstructPath] = absolute(paths.WorkDir, req.InstructPath)
	}

	switch kind, value := req.Source(); kind {
	case SourcePath:
		env[EnvBundlePath] = absolute(paths.WorkDir, value)
	case SourceURL:
		env[EnvBundleURL] = value
	case SourceInline:
		if paths.StagedSource != "" {
			env[EnvBundlePath] = paths.StagedSource
		}
	case SourceNone:
	}

	return env
}

func absolute(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}
