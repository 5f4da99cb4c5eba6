package config

import (
	"os"
	"path/filepath"
)

// candidateFileNames are checked in order when no settings file is given
var candidateFileNames = []string{DefaultFileName, ".imagegen.hcl"}

// DetectSettingsFile returns the settings file to use for a project directory.
// An explicit path always wins, even when it does not exist. Otherwise the first
// candidate present in dir is returned, or "" when there is none.
func DetectSettingsFile(dir, explicit string) string {
	if explicit != "" {
		if filepath.IsAbs(explicit) || fileExists(explicit) {
			return explicit
		}
		return filepath.Join(dir, explicit)
	}

	for _, name := range candidateFileNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
