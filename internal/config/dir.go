package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName names the per-user directory and the root command.
	AppName = "fieldlog"

	// FileName is the configuration file looked up in Dir.
	FileName = AppName + ".ini"
)

var userDir = sync.OnceValues(func() (string, error) {
	base, err := baseDir()
	if err != nil {
		return "", fmt.Errorf("locating user directory: %w", err)
	}

	return filepath.Join(base, AppName), nil
})

// Windows keeps the data under %LocalAppData% so the cache does not roam.
func baseDir() (string, error) {
	if runtime.GOOS == "windows" {
		return os.UserCacheDir()
	}

	return os.UserConfigDir()
}

// Dir returns the per-user fieldlog directory holding the configuration and
// the default data files.
func Dir() (string, error) {
	return userDir()
}

// DefaultPath returns the configuration file used when --config is not set.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, FileName), nil
}
