// Package cli contains the kraken command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openkraken/kraken-cli/internal/config"
	"github.com/openkraken/kraken-cli/internal/platform"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// app holds state shared by all commands of one invocation.
type app struct {
	installRoot string
	platform    platform.Platform

	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *log.Logger
}

func newApp() *app {
	root, err := config.InstallRoot()
	if err != nil {
		root, _ = os.Getwd()
	}
	// An unsupported platform is reported when something is launched,
	// so help, config and release still work.
	plat, _ := platform.Current()

	return &app{
		installRoot: root,
		platform:    plat,
	}
}

// setup loads configuration and builds the logger. It runs before every command.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, a.installRoot)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	a.logger.Debug("configuration loaded",
		"install_root", a.installRoot,
		"build_root", cfg.BuildPath(),
		"platform", a.platform,
	)
	return nil
}

func newRootCommand(a *app) *cobra.Command {
	opts := &launchOptions{}

	rootCmd := &cobra.Command{
		Use:   "kraken [filename|url]",
		Short: "Start a kraken app.",
		Long: `Start a kraken app.

The bundle is taken from --bundle, --url or --source, or from the optional
argument: anything starting with "http" is a url, anything else a path.
If both a bundle path and a url are given, the bundle path is used.`,
		Example: `  kraken ./dist/index.js
  kraken http://localhost:8080/index.js --show-performance-monitor
  kraken -s "console.log('hello')" -m release`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd, a, opts, args)
		},
	}

	opts.register(rootCmd)
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./kraken.toml, then <install root>/kraken.toml)")
	rootCmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newReleaseCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	return rootCmd
}

func newLogger(w io.Writer, level string, verbose bool) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "kraken",
	})

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		logger.SetFormatter(log.LogfmtFormatter)
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)

	return logger, nil
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// errorHandler prints errors through fang, except bare exit codes mirrored
// from the app shell.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the kraken command tree and exits with its status.
func Execute() {
	// SIGINT is routed to the context so the launcher outlives a Ctrl-C
	// meant for the app shell and can still remove staged source.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(newApp()),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
