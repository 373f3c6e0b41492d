package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FindEnvFile looks for filename (".env" when empty) in the working
// directory and then in each parent, so tests run from a package directory
// still find the repository's env file.
func FindEnvFile(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("find %s: %w", filename, err)
	}
	return findUpwards(wd, filename)
}

func findUpwards(dir, filename string) (string, error) {
	for {
		candidate := filepath.Join(dir, filename)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fs.ErrNotExist
		}
		dir = parent
	}
}
