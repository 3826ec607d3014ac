package launcher

import (
	"fmt"
	"strings"
)

// Mode selects which build variant of the app shell is launched
type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// ParseMode validates a --runtime-mode value. Empty means debug.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDebug:
		return ModeDebug, nil
	case ModeRelease:
		return ModeRelease, nil
	default:
		return "", fmt.Errorf("invalid runtime mode %q (want %s or %s)", s, ModeDebug, ModeRelease)
	}
}

func (m Mode) String() string {
	if m == "" {
		return string(ModeDebug)
	}
	return string(m)
}

// Flags are the boolean feature toggles passed through to the app shell.
type Flags struct {
	EnableJSLog            bool
	ShowPerformanceMonitor bool
	DebugLayout            bool
}

// SourceKind identifies which field of a Request supplies the bundle.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourcePath
	SourceURL
	SourceInline
)

func (k SourceKind) String() string {
	switch k {
	case SourcePath:
		return "path"
	case SourceURL:
		return "url"
	case SourceInline:
		return "inline"
	default:
		return "none"
	}
}

// Request is a single launch invocation as typed from the command line.
type Request struct {
	BundlePath   string
	BundleURL    string
	InlineSource string
	InstructPath string
	Mode         Mode
	Flags        Flags

	// Positional is the optional [path-or-url] argument.
	Positional string
}

// HasBundleSource reports whether anything launchable was supplied.
// A request without one shows usage instead of launching.
func (r *Request) HasBundleSource() bool {
	return r.BundlePath != "" || r.BundleURL != "" || r.InlineSource != "" || r.Positional != ""
}

// Resolve folds Positional into BundleURL or BundlePath. It only applies
// when no bundle, url, source or instruct option was given; an argument
// starting with "http" is a URL, anything else a path.
func (r *Request) Resolve() {
	if r.Positional == "" {
		return
	}
	if r.BundlePath != "" || r.BundleURL != "" || r.InlineSource != "" || r.InstructPath != "" {
		return
	}
	if strings.HasPrefix(r.Positional, "http") {
		r.BundleURL = r.Positional
	} else {
		r.BundlePath = r.Positional
	}
}

// Source returns the effective bundle source in priority order
// path > url > inline.
func (r *Request) Source() (SourceKind, string) {
	switch {
	case r.BundlePath != "":
		return SourcePath, r.BundlePath
	case r.BundleURL != "":
		return SourceURL, r.BundleURL
	case r.InlineSource != "":
		return SourceInline, r.InlineSource
	default:
		return SourceNone, ""
	}
}
