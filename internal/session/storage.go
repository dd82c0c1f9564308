package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// lastUsernameKey is the durable-storage key for the last operator who
// logged in on this terminal. Pre-fill convenience only, not security
// sensitive.
const lastUsernameKey = "anpos_last_username"

// Storage is the platform capability the session manager uses to
// remember the last username. Interactive builds inject FileStorage;
// headless ones inject NoopStorage.
type Storage interface {
	LastUsername() (string, error)
	SetLastUsername(username string) error
}

// FileStorage keeps each key as a small file under a directory
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-backed storage rooted at dir
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (f *FileStorage) LastUsername() (string, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, lastUsernameKey))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read last username: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func (f *FileStorage) SetLastUsername(username string) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(f.dir, lastUsernameKey), []byte(username), 0o600); err != nil {
		return fmt.Errorf("failed to write last username: %w", err)
	}

	return nil
}

// NoopStorage remembers nothing; it stands in where no durable client
// storage exists
type NoopStorage struct{}

func (NoopStorage) LastUsername() (string, error) { return "", nil }

func (NoopStorage) SetLastUsername(string) error { return nil }
