// Package release runs the Kraken release-binary build tasks in order.
package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
)

// ErrNoTasks is returned when there is nothing to run.
var ErrNoTasks = errors.New("no release tasks configured")

// TaskError reports the task that stopped the sequence.
type TaskError struct {
	Task  string
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %q (%d) failed: %v", e.Task, e.Index+1, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// ParseRunner splits a runner command line such as `npx gulp` using POSIX
// shell quoting. Variables are expanded from the current environment.
func ParseRunner(command string) ([]string, error) {
	fields, err := shell.Fields(command, nil)
	if err != nil {
		return nil, fmt.Errorf("parse release runner %q: %w", command, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("parse release runner %q: empty command", command)
	}
	return fields, nil
}

// Sequencer invokes Runner once per task, passing the task name as the
// last argument.
type Sequencer struct {
	Runner []string
	Dir    string
	// Env is passed to every task; nil inherits the current environment.
	Env    []string
	Stdout io.Writer
	Stderr io.Writer

	logger *log.Logger
}

// NewSequencer creates a sequencer writing task output to the process streams
func NewSequencer(runner []string, dir string, logger *log.Logger) *Sequencer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sequencer{
		Runner: runner,
		Dir:    dir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Run executes tasks strictly in order. The first failing task aborts the
// rest and is returned as a *TaskError.
func (s *Sequencer) Run(ctx context.Context, tasks []string) error {
	if len(tasks) == 0 {
		return ErrNoTasks
	}
	if len(s.Runner) == 0 {
		return errors.New("release runner is empty")
	}

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return &TaskError{Task: task, Index: i, Err: err}
		}

		start := time.Now()
		s.logger.Info("starting task", "task", task, "step", fmt.Sprintf("%d/%d", i+1, len(tasks)))

		args := append(append([]string(nil), s.Runner[1:]...), task)
		cmd := exec.CommandContext(ctx, s.Runner[0], args...)
		cmd.Dir = s.Dir
		cmd.Env = s.Env
		cmd.Stdout = s.Stdout
		cmd.Stderr = s.Stderr

		if err := cmd.Run(); err != nil {
			return &TaskError{Task: task, Index: i, Err: err}
		}

		s.logger.Info("finished task", "task", task, "elapsed", time.Since(start).Round(time.Millisecond))
	}

	return nil
}
