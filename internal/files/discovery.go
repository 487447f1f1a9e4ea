package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds journal-entry exports in a directory.
type Discovery struct {
	basePath     string
	extensions   []string
	tempPrefixes []string
}

// NewDiscovery creates a discovery instance that accepts the given extensions
// (compared case-insensitively, with the leading dot) and skips names starting
// with any of tempPrefixes.
func NewDiscovery(basePath string, extensions, tempPrefixes []string) *Discovery {
	exts := make([]string, len(extensions))
	for i, e := range extensions {
		exts[i] = strings.ToLower(e)
	}
	return &Discovery{
		basePath:     basePath,
		extensions:   exts,
		tempPrefixes: tempPrefixes,
	}
}

// FindSpreadsheets lists the input files of dir in directory-listing order.
// Subdirectories, lock files and unrecognized extensions are skipped.
func (d *Discovery) FindSpreadsheets(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if d.IsTempFile(name) || !d.HasRecognizedExtension(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// IsTempFile reports whether name carries a temporary-file marker prefix.
func (d *Discovery) IsTempFile(name string) bool {
	for _, prefix := range d.tempPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// HasRecognizedExtension reports whether name ends in an accepted extension.
func (d *Discovery) HasRecognizedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range d.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
