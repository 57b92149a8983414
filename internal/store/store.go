// Package store reads and writes the config file being edited.
//
// Writes are plain truncating overwrites. There is no locking: one editor
// process is assumed to own the file.
package store

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load when the config file does not exist.
var ErrNotFound = errors.New("config file not found")

const defaultPerm os.FileMode = 0o644

// Store loads and saves config files.
type Store struct {
	backup bool
}

// Option configures a Store.
type Option func(*Store)

// WithBackup makes Save copy the previous file contents to "<path>~" before
// overwriting it.
func WithBackup() Option {
	return func(s *Store) {
		s.backup = true
	}
}

// New returns a Store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsNotFound reports whether err was caused by a missing config file.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// Load returns the contents of the file at path.
func (s *Store) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrNotFound, "load %s", path)
		}
		return "", errors.Wrapf(err, "load %s", path)
	}
	glog.V(1).Infof("loaded %s (%d bytes)", path, len(data))
	return string(data), nil
}

// Save replaces the contents of the file at path with text, creating the
// file and its directory if needed. An existing file keeps its permissions.
func (s *Store) Save(path, text string) error {
	perm := defaultPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
		if s.backup {
			if err := s.writeBackup(path, perm); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(text), perm); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	glog.Infof("saved %s (%d bytes)", path, len(text))
	return nil
}

func (s *Store) writeBackup(path string, perm os.FileMode) error {
	old, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s for backup", path)
	}
	backup := path + "~"
	if err := os.WriteFile(backup, old, perm); err != nil {
		return errors.Wrapf(err, "write backup %s", backup)
	}
	glog.V(1).Infof("backed up %s to %s", path, backup)
	return nil
}
