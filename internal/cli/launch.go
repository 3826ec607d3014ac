package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraken/kraken-cli/internal/launcher"
)

// launchOptions are the root command flags.
type launchOptions struct {
	bundle      string
	url         string
	instruct    string
	source      string
	runtimeMode string

	enableJSLog            bool
	showPerformanceMonitor bool
	debugLayout            bool
}

func (o *launchOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.bundle, "bundle", "b", "", "bundle path; one of bundle or url is needed, bundle wins if both are set")
	f.StringVarP(&o.url, "url", "u", "", "bundle url; one of bundle or url is needed, bundle wins if both are set")
	f.StringVarP(&o.instruct, "instruct", "i", "", "instruct file path")
	f.StringVarP(&o.source, "source", "s", "", "inline source code to run")
	f.StringVarP(&o.runtimeMode, "runtime-mode", "m", string(launcher.ModeDebug), "runtime mode, debug | release")
	f.BoolVar(&o.enableJSLog, "enable-kraken-js-log", false, "print kraken js logs to the dart log")
	f.BoolVar(&o.showPerformanceMonitor, "show-performance-monitor", false, "show the render performance monitor")
	f.BoolVarP(&o.debugLayout, "debug-layout", "d", false, "debug element paint layout")
}

// request validates the flags into a launch request.
func (o *launchOptions) request(args []string) (launcher.Request, error) {
	mode, err := launcher.ParseMode(o.runtimeMode)
	if err != nil {
		return launcher.Request{}, err
	}

	req := launcher.Request{
		BundlePath:   o.bundle,
		BundleURL:    o.url,
		InlineSource: o.source,
		InstructPath: o.instruct,
		Mode:         mode,
		Flags: launcher.Flags{
			EnableJSLog:            o.enableJSLog,
			ShowPerformanceMonitor: o.showPerformanceMonitor,
			DebugLayout:            o.debugLayout,
		},
	}
	if len(args) > 0 {
		req.Positional = args[0]
	}
	return req, nil
}

func runLaunch(cmd *cobra.Command, a *app, opts *launchOptions, args []string) error {
	req, err := opts.request(args)
	if err != nil {
		return err
	}
	if !req.HasBundleSource() {
		return cmd.Help()
	}

	l := launcher.New(a.cfg, a.platform, a.logger)
	l.Stdin = cmd.InOrStdin()
	l.Stdout = cmd.OutOrStdout()
	l.Stderr = cmd.ErrOrStderr()
	l.Announce = func(executable string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n\n", SuccessStyle.Render("Execute binary:"), executable)
	}

	code, err := l.Run(cmd.Context(), req)
	switch {
	case errors.Is(err, launcher.ErrUsage):
		return cmd.Help()
	case err != nil:
		return err
	case code != 0:
		return &ExitError{Code: code}
	}
	return nil
}
