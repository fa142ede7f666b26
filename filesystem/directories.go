// Package filesystem resolves and prepares the directories used by the node.
package filesystem

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// OwnerReadWriteExec is the mode of directories holding keys and databases.
const OwnerReadWriteExec = 0o700

// GetUserHomeDirectory returns the home directory of the current user, or an empty string.
func GetUserHomeDirectory() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// GetCanonicalPath expands a leading ~ and environment variables in p.
func GetCanonicalPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		if home := GetUserHomeDirectory(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

// EnsureDir creates the canonical path of dir if it doesn't exist and returns it.
func EnsureDir(dir string) (string, error) {
	p := GetCanonicalPath(dir)
	if err := os.MkdirAll(p, OwnerReadWriteExec); err != nil {
		return "", fmt.Errorf("create %s: %w", p, err)
	}
	return p, nil
}
