package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir is $XDG_DATA_HOME/facta, falling back to ~/.local/share/facta.
// It is not created.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "facta"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "facta"), nil
}

// DefaultDBPath is $FACTA_DB, else facta.db in DataDir. Its directory is
// created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("FACTA_DB")
	if p == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "facta.db")
	}
	return p, EnsureDir(p)
}

// EnsureDir creates the directory that will hold path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
