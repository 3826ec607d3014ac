package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraken/kraken-cli/internal/release"
)

func newReleaseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "release [task...]",
		Short: "Build the kraken release binaries",
		Long: `Run the release build tasks in order through the configured task runner.

Without arguments the tasks from the release.tasks setting are run. The
first failing task stops the sequence.`,
		Example: `  kraken release
  kraken release sdk-clean compile-polyfill`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := args
			if len(tasks) == 0 {
				tasks = a.cfg.Release.Tasks
			}

			runner, err := release.ParseRunner(a.cfg.Release.Runner)
			if err != nil {
				return err
			}

			seq := release.NewSequencer(runner, a.cfg.ReleaseDir(), a.logger)
			seq.Stdout = cmd.OutOrStdout()
			seq.Stderr = cmd.ErrOrStderr()

			if err := seq.Run(cmd.Context(), tasks); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Success."))
			return nil
		},
	}
}
