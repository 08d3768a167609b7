package images

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// RewriteReferences updates every HTML file under dir so references to
// converted HEIC files point at their PNG replacement. Notion HTML spells
// the same image several ways (bare name, relative path, URL-encoded), so
// each conversion is matched against all plausible spellings. Returns the
// number of files changed.
func RewriteReferences(dir string, conversions []Conversion) (int, error) {
	if len(conversions) == 0 {
		return 0, nil
	}

	var htmlFiles []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && isHTMLFile(d.Name()) {
			htmlFiles = append(htmlFiles, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("images: walk %s: %w", dir, err)
	}

	updated := 0
	for _, htmlFile := range htmlFiles {
		data, err := os.ReadFile(htmlFile)
		if err != nil {
			return updated, fmt.Errorf("images: read %s: %w", htmlFile, err)
		}

		content := string(data)
		original := content
		for _, conv := range conversions {
			replacement := filepath.Base(conv.NewPath)
			for _, pattern := range referenceSpellings(conv.OldPath, filepath.Dir(htmlFile)) {
				content = strings.ReplaceAll(content, pattern, replacement)
			}
		}

		if content == original {
			continue
		}
		if err := os.WriteFile(htmlFile, []byte(content), 0o644); err != nil {
			return updated, fmt.Errorf("images: write %s: %w", htmlFile, err)
		}
		updated++
	}

	return updated, nil
}

// referenceSpellings lists the strings an HTML file in htmlDir might use to
// reference the image at oldPath. Longest first so path spellings win over
// the bare name.
func referenceSpellings(oldPath, htmlDir string) []string {
	name := filepath.Base(oldPath)
	spellings := []string{}

	if rel, err := filepath.Rel(htmlDir, oldPath); err == nil && !strings.HasPrefix(rel, "..") {
		slashed := filepath.ToSlash(rel)
		spellings = append(spellings, slashed, escapePath(slashed))
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for _, variant := range extCaseVariants(ext) {
		spelled := stem + variant
		spellings = append(spellings, spelled, escapePath(spelled))
	}

	return dedupe(spellings)
}

// extCaseVariants returns the extension in the case spellings Notion and
// cameras produce: as-is, lower, upper.
func extCaseVariants(ext string) []string {
	return dedupe([]string{ext, strings.ToLower(ext), strings.ToUpper(ext)})
}

// escapePath percent-encodes a slash-separated path the way Notion export
// HTML does, segment by segment so slashes survive.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func isHTMLFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
