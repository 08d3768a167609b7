// Package links repairs internal navigation in extracted bundles: Notion
// URLs and stale relative hrefs are resolved against the HTML files that
// actually exist and rewritten as relative paths.
package links

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ambersite/notionkit/internal/notion"
)

var hrefAttr = regexp.MustCompile(`href="([^"]*)"`)

// Index maps the identities a link may use (page UUIDs, file names, bare
// stems) to concrete HTML files.
type Index struct {
	uuidToFile map[string]string
	nameToFile map[string]string
	// names holds the nameToFile keys sorted, so fuzzy fallbacks pick the
	// same winner on every run
	names []string
}

// BuildIndex indexes the given HTML files by Notion UUID, file name and stem.
// Later files win name collisions, matching the behavior of scanning a tree
// in walk order.
func BuildIndex(htmlFiles []string) *Index {
	idx := &Index{
		uuidToFile: make(map[string]string),
		nameToFile: make(map[string]string),
	}

	for _, file := range htmlFiles {
		base := filepath.Base(file)
		stem := strings.TrimSuffix(base, filepath.Ext(base))

		idx.nameToFile[base] = file
		idx.nameToFile[stem] = file

		if hex, ok := notion.ExtractHexUUID(base); ok {
			idx.uuidToFile[hex] = file
		}
	}

	for name := range idx.nameToFile {
		idx.names = append(idx.names, name)
	}
	sort.Strings(idx.names)

	return idx
}

// FixFile rewrites the hrefs in one HTML file against the index. Returns
// whether the file changed.
func FixFile(htmlFile string, idx *Index) (bool, error) {
	data, err := os.ReadFile(htmlFile)
	if err != nil {
		return false, fmt.Errorf("links: read %s: %w", htmlFile, err)
	}

	content := string(data)
	fixed := hrefAttr.ReplaceAllStringFunc(content, func(match string) string {
		href := hrefAttr.FindStringSubmatch(match)[1]
		target, ok := idx.Resolve(href)
		if !ok {
			return match
		}
		rel, err := filepath.Rel(filepath.Dir(htmlFile), target)
		if err != nil {
			rel = filepath.Base(target)
		}
		return fmt.Sprintf(`href="%s"`, filepath.ToSlash(rel))
	})

	if fixed == content {
		return false, nil
	}
	if err := os.WriteFile(htmlFile, []byte(fixed), 0o644); err != nil {
		return false, fmt.Errorf("links: write %s: %w", htmlFile, err)
	}
	return true, nil
}

// FixTree repairs links in every given HTML file. Returns how many changed.
func FixTree(htmlFiles []string) (int, error) {
	idx := BuildIndex(htmlFiles)
	fixed := 0
	for _, file := range htmlFiles {
		changed, err := FixFile(file, idx)
		if err != nil {
			return fixed, err
		}
		if changed {
			fixed++
		}
	}
	return fixed, nil
}

// Resolve maps an href to a known HTML file, or reports that the href
// should be left alone.
func (idx *Index) Resolve(href string) (string, bool) {
	// Anchors, mail links and foreign absolute URLs stay as-is
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "#") {
		return "", false
	}
	isAbsolute := strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
	if isAbsolute && !strings.Contains(href, "notion.so") {
		return "", false
	}

	// notion.so URLs carry the page UUID
	if strings.Contains(href, "notion.so") {
		if hex, ok := notion.ExtractHexUUID(href); ok {
			if file, ok := idx.uuidToFile[hex]; ok {
				return file, true
			}
		}
		return "", false
	}

	decoded := href
	if d, err := url.PathUnescape(href); err == nil {
		decoded = d
	}
	if !strings.HasSuffix(strings.ToLower(decoded), ".html") &&
		!strings.HasSuffix(strings.ToLower(decoded), ".htm") {
		return "", false
	}

	// Exact name matches, raw then decoded
	for _, candidate := range []string{href, decoded, filepath.Base(decoded)} {
		if file, ok := idx.nameToFile[candidate]; ok {
			return file, true
		}
	}

	// Fuzzy stem match: cleaned exports swap spaces and underscores around
	base := filepath.Base(decoded)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "", false
	}
	for _, variant := range []string{
		stem,
		strings.ReplaceAll(stem, " ", "_"),
		strings.ReplaceAll(stem, "_", " "),
	} {
		if file, ok := idx.nameToFile[variant]; ok {
			return file, true
		}
	}
	for _, name := range idx.names {
		if strings.Contains(name, stem) || strings.Contains(stem, name) {
			return idx.nameToFile[name], true
		}
	}

	return "", false
}
