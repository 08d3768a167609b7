package project

import (
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var hrefHTMLAttr = regexp.MustCompile(`href="([^"]*\.html)"`)

// fixInternalLinks rewrites links between subpages to their clean output
// filenames. Targets are matched against files near sourceFile, trying the
// href as written plus space/underscore variants.
func fixInternalLinks(content string, mapping map[string]string, sourceFile string) string {
	sourceDir := filepath.Dir(sourceFile)

	return hrefHTMLAttr.ReplaceAllStringFunc(content, func(attr string) string {
		href := hrefHTMLAttr.FindStringSubmatch(attr)[1]
		if strings.Contains(href, "://") {
			return attr
		}

		decoded := href
		if d, err := url.PathUnescape(href); err == nil {
			decoded = d
		}
		decoded = filepath.FromSlash(decoded)

		target := findLinkTarget(sourceDir, decoded)
		if target == "" {
			return attr
		}
		if newName, ok := mapping[target]; ok {
			return `href="` + newName + `"`
		}
		return attr
	})
}

// findLinkTarget resolves a decoded href to an existing file under
// sourceDir, or "" when nothing matches.
func findLinkTarget(sourceDir, decoded string) string {
	base := filepath.Base(decoded)
	variations := []string{
		decoded,
		base,
		strings.ReplaceAll(decoded, " ", "_"),
		strings.ReplaceAll(base, " ", "_"),
		strings.ReplaceAll(decoded, "_", " "),
		strings.ReplaceAll(base, "_", " "),
	}

	for _, v := range variations {
		path := filepath.Join(sourceDir, v)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return filepath.Clean(path)
		}
	}

	// Last resort: the bare filename anywhere under sourceDir
	var found string
	filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if d.Name() == base {
			found = filepath.Clean(path)
			return fs.SkipAll
		}
		return nil
	})
	return found
}
