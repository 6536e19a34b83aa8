// internal/attr/sysfs.go
package attr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SysfsStore reads and writes device attributes as files under one
// directory (one file per attribute). Reads strip surrounding whitespace;
// writes serialize the value as a plain string.
type SysfsStore struct {
	dir string
}

// NewSysfsStore creates a store rooted at dir.
// The directory is not checked at construction; missing attributes
// surface as ErrNotFound on access.
func NewSysfsStore(dir string) *SysfsStore {
	return &SysfsStore{dir: dir}
}

func (s *SysfsStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *SysfsStore) Get(name string) (string, error) {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("attr read %s: %w", name, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *SysfsStore) Set(name, value string) error {
	path := s.path(name)

	// Sysfs attributes exist or they don't; never create files here.
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("attr stat %s: %w", name, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("attr open %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.WriteString(value); err != nil {
		return fmt.Errorf("attr write %s: %w", name, err)
	}

	return nil
}
