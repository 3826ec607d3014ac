package launcher

import (
	"path/filepath"
	"runtime"

	"github.com/openkraken/kraken-cli/internal/config"
	"github.com/openkraken/kraken-cli/internal/platform"
)

// ExecutablePath returns the app shell for plat under <build>/app.
//
//	macOS: app/<mode>/<App>.app/Contents/MacOS/<App>
//	Linux: app/<linux_executable>
func ExecutablePath(cfg *config.Config, plat platform.Platform, mode Mode) (string, error) {
	appDir := filepath.Join(cfg.BuildPath(), "app")

	switch plat {
	case platform.MacOS:
		variant := ModeDebug
		if mode == ModeRelease {
			variant = ModeRelease
		}
		bundle := cfg.AppBundleName + ".app"
		return filepath.Join(appDir, string(variant), bundle, "Contents", "MacOS", cfg.AppBundleName), nil
	case platform.Linux:
		return filepath.Join(appDir, cfg.LinuxExecutable), nil
	case platform.Unsupported:
		return "", &UnsupportedPlatformError{OS: runtime.GOOS}
	default:
		return "", &UnsupportedPlatformError{OS: string(plat)}
	}
}
