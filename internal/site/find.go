// Package site provides browsing aids for extracted bundles: HTML file
// discovery, main-page detection, a generated index page, and a content
// summary.
package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindHTMLFiles returns every .html/.htm file under dir, sorted. With
// excludeIndex set, index pages are skipped so navigation aids are not
// themed or re-listed.
func FindHTMLFiles(dir string, excludeIndex bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".html" && ext != ".htm" {
			return nil
		}
		if excludeIndex {
			stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ext))
			if stem == "index" {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("site: scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// FindMainFile picks the bundle's entry page: the largest HTML file sitting
// directly in rootDir, else the largest anywhere. Returns "" for an empty
// list.
func FindMainFile(htmlFiles []string, rootDir string) string {
	if len(htmlFiles) == 0 {
		return ""
	}

	var rootFiles []string
	for _, f := range htmlFiles {
		if filepath.Dir(f) == filepath.Clean(rootDir) {
			rootFiles = append(rootFiles, f)
		}
	}

	candidates := htmlFiles
	if len(rootFiles) > 0 {
		candidates = rootFiles
	}

	main := candidates[0]
	mainSize := fileSize(main)
	for _, f := range candidates[1:] {
		if s := fileSize(f); s > mainSize {
			main, mainSize = f, s
		}
	}
	return main
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
