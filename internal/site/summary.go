package site

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SubdirInfo is one top-level directory in a Summary.
type SubdirInfo struct {
	Name      string
	FileCount int
}

// Summary describes what an extracted bundle directory ended up containing.
type Summary struct {
	HTMLCount  int
	TypeCounts map[string]int
	Subdirs    []SubdirInfo
}

// Summarize walks dir and counts files by extension plus top-level
// subdirectories. index.html is not counted, it is generated.
func Summarize(dir string, htmlCount int) (*Summary, error) {
	s := &Summary{HTMLCount: htmlCount, TypeCounts: map[string]int{}}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == "index.html" {
			return nil
		}
		s.TypeCounts[strings.ToLower(filepath.Ext(path))]++
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		count := 0
		filepath.WalkDir(filepath.Join(dir, entry.Name()), func(path string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				count++
			}
			return nil
		})
		s.Subdirs = append(s.Subdirs, SubdirInfo{Name: entry.Name(), FileCount: count})
	}
	sort.Slice(s.Subdirs, func(i, j int) bool { return s.Subdirs[i].Name < s.Subdirs[j].Name })

	return s, nil
}

// Log prints the summary in the CLI's output style.
func (s *Summary) Log() {
	log.Printf("Final directory contains:")
	log.Printf("  HTML files: %d", s.HTMLCount)

	exts := make([]string, 0, len(s.TypeCounts))
	for ext := range s.TypeCounts {
		if ext == ".html" || ext == ".htm" {
			continue
		}
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		label := "No extension"
		if ext != "" {
			label = strings.ToUpper(ext[1:])
		}
		log.Printf("  %s files: %d", label, s.TypeCounts[ext])
	}

	if len(s.Subdirs) > 0 {
		log.Printf("  Subdirectories: %d", len(s.Subdirs))
		shown := s.Subdirs
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, d := range shown {
			log.Printf("    - %s/ (%d files)", d.Name, d.FileCount)
		}
		if len(s.Subdirs) > 5 {
			log.Printf("    ... and %d more directories", len(s.Subdirs)-5)
		}
	}
}
