package savefmt

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink writes a save file through a temporary file in the destination directory and
// renames it into place on Commit, so a failed save never leaves a partial file at
// the destination path.
type Sink struct {
	*Encoder
	f    *os.File
	path string
	done bool
}

// Create opens a sink for path. The destination directory must exist.
func Create(path string) (*Sink, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &Sink{Encoder: NewEncoder(f), f: f, path: path}, nil
}

// Path returns the final destination.
func (s *Sink) Path() string { return s.path }

// Commit flushes, closes and renames the temporary file to the destination.
func (s *Sink) Commit() error {
	if s.done {
		return fmt.Errorf("savefmt: sink for %s already closed", s.path)
	}
	s.done = true
	tmp := s.f.Name()
	if err := s.Flush(); err != nil {
		_ = s.f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := s.f.Chmod(0o644); err != nil {
		_ = s.f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := s.f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (s *Sink) Abort() {
	if s.done {
		return
	}
	s.done = true
	_ = s.f.Close()
	_ = os.Remove(s.f.Name())
}
