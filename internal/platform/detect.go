package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupported is returned when the host OS has no Kraken app shell build.
var ErrUnsupported = errors.New("unsupported platform")

// Platform represents an operating system the Kraken app shell is built for
type Platform string

const (
	// Unsupported is the zero value; nothing can be launched on it.
	Unsupported Platform = ""
	MacOS       Platform = "darwin"
	Linux       Platform = "linux"
)

// AllPlatforms lists all platforms with a known app shell layout
var AllPlatforms = []Platform{
	MacOS,
	Linux,
}

// Current detects the current platform
func Current() (Platform, error) {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a Go OS identifier to a Platform
func FromGOOS(goos string) (Platform, error) {
	switch goos {
	case "darwin":
		return MacOS, nil
	case "linux":
		return Linux, nil
	default:
		return Unsupported, fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
}

// IsSupported reports whether p is one of AllPlatforms
func (p Platform) IsSupported() bool {
	switch p {
	case MacOS, Linux:
		return true
	default:
		return false
	}
}

// String returns the platform identifier
func (p Platform) String() string {
	if p == Unsupported {
		return "unsupported"
	}
	return string(p)
}
