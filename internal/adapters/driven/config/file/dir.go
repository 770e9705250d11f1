package file

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the frontdesk home directory.
const EnvHome = "FRONTDESK_HOME"

// DefaultDir returns $FRONTDESK_HOME, or ~/.frontdesk when unset.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".frontdesk"), nil
}

// resolveDir returns dir, or DefaultDir when empty, creating it if needed.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
