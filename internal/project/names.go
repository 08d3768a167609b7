// Package project assembles themed project pages out of a cleaned export:
// naming, subpage mapping, image and asset copying, and the two delivery
// modes (standalone project directory or in-place theming).
package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	trailingUUID = regexp.MustCompile(`\s+[a-f0-9]{32}$`)
	specialChars = regexp.MustCompile(`[^\w\s-]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// CleanDirName derives a directory name from a page title: the site's title
// suffix is stripped, special characters dropped, and whitespace collapsed.
func CleanDirName(title, titleSuffix string) string {
	name := title
	if titleSuffix != "" {
		name = strings.ReplaceAll(name, titleSuffix, "")
	}
	name = specialChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(multiSpace.ReplaceAllString(name, " "))
	if name == "" {
		return "untitled project"
	}
	return name
}

// SubpageMapping assigns each HTML file a clean output filename: the stem
// with Notion UUID suffix and special characters removed, made unique with
// " 1", " 2", ... suffixes. Input order decides who keeps the bare name.
func SubpageMapping(htmlFiles []string) map[string]string {
	mapping := make(map[string]string, len(htmlFiles))
	taken := map[string]bool{}

	for _, file := range htmlFiles {
		name := subpageStem(file)
		if taken[name] {
			for counter := 1; ; counter++ {
				candidate := fmt.Sprintf("%s %d", name, counter)
				if !taken[candidate] {
					name = candidate
					break
				}
			}
		}
		taken[name] = true
		mapping[file] = name + ".html"
	}
	return mapping
}

func subpageStem(file string) string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = trailingUUID.ReplaceAllString(stem, "")
	stem = specialChars.ReplaceAllString(stem, "")
	stem = strings.TrimSpace(multiSpace.ReplaceAllString(stem, " "))
	if stem == "" {
		return "subpage"
	}
	return stem
}
