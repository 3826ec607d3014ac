package platform

import (
	"errors"
	"runtime"
	"testing"
)

func TestFromGOOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos    string
		want    Platform
		wantErr bool
	}{
		{goos: "darwin", want: MacOS},
		{goos: "linux", want: Linux},
		{goos: "windows", want: Unsupported, wantErr: true},
		{goos: "freebsd", want: Unsupported, wantErr: true},
		{goos: "", want: Unsupported, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()

			got, err := FromGOOS(tt.goos)
			if got != tt.want {
				t.Errorf("FromGOOS(%q) = %q, want %q", tt.goos, got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupported) {
				t.Errorf("FromGOOS(%q) error = %v, want ErrUnsupported", tt.goos, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("FromGOOS(%q) unexpected error: %v", tt.goos, err)
			}
		})
	}
}

func TestCurrent_MatchesRuntime(t *testing.T) {
	t.Parallel()

	got, err := Current()
	want, wantErr := FromGOOS(runtime.GOOS)
	if got != want || (err == nil) != (wantErr == nil) {
		t.Errorf("Current() = (%q, %v), want (%q, %v)", got, err, want, wantErr)
	}
}

func TestPlatform_IsSupported(t *testing.T) {
	t.Parallel()

	for _, p := range AllPlatforms {
		if !p.IsSupported() {
			t.Errorf("%s.IsSupported() = false, want true", p)
		}
	}
	if Unsupported.IsSupported() {
		t.Error("Unsupported.IsSupported() = true, want false")
	}
	if got := Unsupported.String(); got != "unsupported" {
		t.Errorf("Unsupported.String() = %q, want %q", got, "unsupported")
	}
}
