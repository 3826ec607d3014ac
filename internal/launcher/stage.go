package launcher

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

const stagePattern = "kraken-source-*"

// Stager writes inline source to temp files and remembers them for Cleanup.
type Stager struct {
	// Dir is where files are created; empty means os.TempDir().
	Dir string

	mu    sync.Mutex
	files []string
}

// NewStager creates a stager rooted at dir
func NewStager(dir string) *Stager {
	return &Stager{Dir: dir}
}

// Stage writes source verbatim to a new uniquely named file and returns its path.
func (s *Stager) Stage(source string) (string, error) {
	f, err := os.CreateTemp(s.Dir, stagePattern)
	if err != nil {
		return "", &StagingError{Err: err}
	}
	path := f.Name()

	s.mu.Lock()
	s.files = append(s.files, path)
	s.mu.Unlock()

	if _, err := f.WriteString(source); err != nil {
		f.Close()
		return "", &StagingError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &StagingError{Path: path, Err: err}
	}

	return path, nil
}

// Files returns the paths staged and not yet cleaned up.
func (s *Stager) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.files...)
}

// Cleanup removes every staged file. Files already gone are not an error.
func (s *Stager) Cleanup() error {
	s.mu.Lock()
	files := s.files
	s.files = nil
	s.mu.Unlock()

	var errs []error
	for _, path := range files {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
