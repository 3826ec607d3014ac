package launcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openkraken/kraken-cli/internal/platform"
)

// ErrUsage is returned when a request names nothing to launch. Callers
// show help; it is not a failure.
var ErrUsage = errors.New("one of bundle, url, source or a path-or-url argument is required")

// UnsupportedPlatformError is returned when the host OS has no app shell layout.
type UnsupportedPlatformError struct {
	OS string
}

func (e *UnsupportedPlatformError) Error() string {
	supported := make([]string, 0, len(platform.AllPlatforms))
	for _, p := range platform.AllPlatforms {
		supported = append(supported, p.String())
	}
	return fmt.Sprintf("no Kraken app shell is built for %q; supported platforms: %s",
		e.OS, strings.Join(supported, ", "))
}

func (e *UnsupportedPlatformError) Unwrap() error { return platform.ErrUnsupported }

// StagingError is returned when inline source cannot be written to a temp file.
type StagingError struct {
	Path string
	Err  error
}

func (e *StagingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("stage inline source: %v", e.Err)
	}
	return fmt.Sprintf("stage inline source to %s: %v", e.Path, e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }

// SpawnError is returned when the app shell cannot be started at all.
type SpawnError struct {
	Executable string
	Err        error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("execute %s: %v", e.Executable, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
