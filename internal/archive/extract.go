// Package archive unpacks exported HTML bundles, including ZIPs nested
// inside ZIPs, into a flat browsable directory tree.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extractor unpacks bundle archives.
type Extractor struct {
	// KeepZips leaves nested ZIP files in place after extracting them.
	KeepZips bool

	// MaxNestedDepth bounds recursion into ZIPs found inside the archive.
	MaxNestedDepth int
}

// NewExtractor creates an extractor with the given nested-ZIP policy.
func NewExtractor(keepZips bool, maxNestedDepth int) *Extractor {
	return &Extractor{KeepZips: keepZips, MaxNestedDepth: maxNestedDepth}
}

// Extract unpacks archivePath into destDir, then recursively unpacks any
// nested ZIP files it finds. destDir is created if needed.
func (e *Extractor) Extract(archivePath, destDir string) error {
	if !strings.EqualFold(filepath.Ext(archivePath), ".zip") {
		return fmt.Errorf("archive: unsupported archive format %q", filepath.Ext(archivePath))
	}
	destDir = filepath.Clean(destDir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("archive: create %s: %w", destDir, err)
	}
	if err := extractZip(archivePath, destDir); err != nil {
		return err
	}
	e.extractNested(destDir, 0)
	return nil
}

// OutputDir returns the conventional extraction directory for an archive:
// a sibling directory named after the archive stem.
func OutputDir(archivePath string) string {
	base := filepath.Base(archivePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(archivePath), stem)
}

func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("archive: open %s: %w", archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractEntry(f, destDir); err != nil {
			return fmt.Errorf("archive: extract %s from %s: %w", f.Name, filepath.Base(archivePath), err)
		}
	}
	return nil
}

func extractEntry(f *zip.File, destDir string) error {
	target, err := safeJoin(destDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin resolves an archive entry name inside destDir, rejecting entries
// that would escape it (ZipSlip).
func safeJoin(destDir, name string) (string, error) {
	cleaned := filepath.Join(destDir, filepath.FromSlash(name))
	if cleaned != destDir && !strings.HasPrefix(cleaned, destDir+string(os.PathSeparator)) {
		return "", errors.New("entry path escapes extraction directory")
	}
	return cleaned, nil
}

// extractNested finds ZIP files under dir and extracts each one next to
// itself. Errors are logged and skipped so one bad nested archive doesn't
// abort the whole bundle.
func (e *Extractor) extractNested(dir string, depth int) {
	if depth > e.MaxNestedDepth {
		return
	}

	zips := findByExt(dir, ".zip")
	for _, zipPath := range zips {
		stem := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
		extractDir := filepath.Join(filepath.Dir(zipPath), stem)

		// Already extracted on a previous run
		if _, err := os.Stat(extractDir); err == nil {
			continue
		}

		if err := extractZip(zipPath, extractDir); err != nil {
			log.Printf("[WARN] skipping nested archive %s: %v", filepath.Base(zipPath), err)
			continue
		}

		e.extractNested(extractDir, depth+1)

		if !e.KeepZips {
			if err := os.Remove(zipPath); err != nil {
				log.Printf("[WARN] could not remove %s: %v", filepath.Base(zipPath), err)
			}
		}
	}
}

// CleanupZips removes every remaining ZIP file under dir.
func CleanupZips(dir string) int {
	removed := 0
	for _, zipPath := range findByExt(dir, ".zip") {
		if err := os.Remove(zipPath); err != nil {
			log.Printf("[WARN] could not remove %s: %v", filepath.Base(zipPath), err)
			continue
		}
		removed++
	}
	return removed
}

// RemoveEmptyDirs deletes empty directories under root, deepest first, so
// directories emptied by a deeper removal get cleaned up in the same pass.
func RemoveEmptyDirs(root string) int {
	var dirs []string
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})

	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(os.PathSeparator)) > strings.Count(dirs[j], string(os.PathSeparator))
	})

	removed := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err == nil {
			removed++
		}
	}
	return removed
}

func findByExt(dir, ext string) []string {
	var out []string
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out
}
