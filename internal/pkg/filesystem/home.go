// Package filesystem holds path helpers shared by the config loader and the CLI.
package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the per-user directory holding config.yaml and wai.log.
const AppDirName = ".wai"

// UserHomeDir returns the current user's home directory, or "." when unknown.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir returns ~/.wai.
func AppDir() string {
	return filepath.Join(UserHomeDir(), AppDirName)
}

// ExpandHome resolves a leading ~/ and cleans the result.
func ExpandHome(path string) string {
	switch {
	case path == "~":
		return UserHomeDir()
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(UserHomeDir(), path[2:])
	default:
		return filepath.Clean(path)
	}
}

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(path), perm)
}
