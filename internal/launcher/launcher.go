package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/openkraken/kraken-cli/internal/config"
	"github.com/openkraken/kraken-cli/internal/platform"
)

// Launcher resolves and runs the Kraken app shell
type Launcher struct {
	config   *config.Config
	platform platform.Platform
	logger   *log.Logger

	// Env is the base environment snapshot the child inherits.
	Env Env
	// WorkDir anchors relative --bundle and --instruct paths.
	WorkDir string
	// Stager holds inline --source files.
	Stager *Stager

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Announce is called with the executable path right before it starts.
	Announce func(executable string)
}

// New creates a launcher wired to the current process: its environment,
// working directory and standard streams.
func New(cfg *config.Config, plat platform.Platform, logger *log.Logger) *Launcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	wd, _ := os.Getwd()

	return &Launcher{
		config:   cfg,
		platform: plat,
		logger:   logger,
		Env:      EnvFromList(os.Environ()),
		WorkDir:  wd,
		Stager:   NewStager(""),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Run launches the app shell for req and blocks until it exits, returning
// its exit code. A request with nothing to launch returns ErrUsage without
// touching the filesystem.
func (l *Launcher) Run(ctx context.Context, req Request) (int, error) {
	if !req.HasBundleSource() {
		return 0, ErrUsage
	}
	req.Resolve()

	executable, err := ExecutablePath(l.config, l.platform, req.Mode)
	if err != nil {
		return 1, err
	}

	paths := EnvPaths{
		LibraryDir: l.config.LibraryPath(),
		WorkDir:    l.WorkDir,
	}

	kind, value := req.Source()
	if kind == SourceInline {
		staged, err := l.Stager.Stage(value)
		if err != nil {
			l.cleanup()
			return 1, err
		}
		paths.StagedSource = staged
		l.logger.Debug("staged inline source", "path", staged, "bytes", len(value))
		if !l.config.KeepStagedSource {
			defer l.cleanup()
		}
	}

	env := BuildEnv(l.Env, &req, paths)
	l.logger.Debug("launch request",
		"mode", req.Mode,
		"source", kind,
		"library", env[EnvLibraryPath],
	)

	if err := ctx.Err(); err != nil {
		return 1, err
	}

	if l.Announce != nil {
		l.Announce(executable)
	} else {
		l.logger.Info("execute binary", "path", executable)
	}

	cmd := exec.Command(executable)
	cmd.Env = env.List()
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// Terminated by a signal.
				l.logger.Debug("app shell terminated", "state", exitErr.ProcessState.String())
				code = 1
			}
			return code, nil
		}
		return 1, &SpawnError{Executable: executable, Err: err}
	}

	return 0, nil
}

func (l *Launcher) cleanup() {
	if err := l.Stager.Cleanup(); err != nil {
		l.logger.Warn("failed to remove staged source", "error", err)
	}
}
