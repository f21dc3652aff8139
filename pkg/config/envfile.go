package config

import (
	"os"
	"path/filepath"
)

// findEnvFile resolves name to an existing file. Absolute names are checked
// as is; relative ones are looked up in dir and then in each parent of dir,
// so a binary or test started in a subdirectory still finds the project's
// .env. An empty dir means the working directory.
func findEnvFile(name, dir string) (string, error) {
	if name == "" {
		name = ".env"
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
