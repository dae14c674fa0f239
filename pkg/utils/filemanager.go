// =============================================================================
// EPOS Data Generator - File Manager Utility
// =============================================================================
//
// Small file management helpers shared by the CLI commands: output directory
// preparation and artifact size reporting for the verification summary.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ArtifactInfo describes one exported file on disk.
type ArtifactInfo struct {
	Name   string
	SizeMB float64
}

// ListArtifacts returns the regular files in dir with their sizes in
// megabytes, sorted by name.
func ListArtifacts(dir string) ([]ArtifactInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var artifacts []ArtifactInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, ArtifactInfo{
			Name:   entry.Name(),
			SizeMB: float64(info.Size()) / (1024 * 1024),
		})
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Name < artifacts[j].Name })
	return artifacts, nil
}

// FileSizeMB returns the size of one file in megabytes.
func FileSizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(info.Size()) / (1024 * 1024), nil
}

// EnsureParentDir creates the parent directory of the given file path.
func EnsureParentDir(path string) error {
	return EnsureDir(filepath.Dir(path))
}
