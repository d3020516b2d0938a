package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore persists files on disk under a single flat base directory.
// Stored names are always generated by the caller, never client-supplied
// paths, so everything resolves to an immediate child of the base dir.
type LocalStore struct {
	baseDir string
}

// NewLocalStore ensures the base directory exists and returns a handle.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("storage base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save writes the given bytes under the provided storage name.
func (s *LocalStore) Save(name string, data []byte) error {
	if err := os.WriteFile(s.resolve(name), data, 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", name, err)
	}
	return nil
}

// Read returns the full contents of a stored file.
func (s *LocalStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", name, err)
	}
	return data, nil
}

// Open returns a read-only handle for the stored file.
func (s *LocalStore) Open(name string) (*os.File, error) {
	file, err := os.Open(s.resolve(name))
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", name, err)
	}
	return file, nil
}

// Delete removes a stored file. Deleting an absent file is not an error.
func (s *LocalStore) Delete(name string) error {
	if err := os.Remove(s.resolve(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file %s: %w", name, err)
	}
	return nil
}

// Exists reports whether a stored file is present on disk.
func (s *LocalStore) Exists(name string) bool {
	info, err := os.Stat(s.resolve(name))
	return err == nil && !info.IsDir()
}

// Size returns the byte size of a stored file.
func (s *LocalStore) Size(name string) (int64, error) {
	info, err := os.Stat(s.resolve(name))
	if err != nil {
		return 0, fmt.Errorf("stat file %s: %w", name, err)
	}
	return info.Size(), nil
}

// Dir exposes the base directory (used for static file mounts).
func (s *LocalStore) Dir() string {
	return s.baseDir
}

// Path returns the absolute path of a stored file.
func (s *LocalStore) Path(name string) string {
	return s.resolve(name)
}

func (s *LocalStore) resolve(name string) string {
	return filepath.Join(s.baseDir, filepath.Base(name))
}
