// Package notion cleans up the filename noise Notion adds to HTML exports:
// 32-hex page UUIDs, ExportBlock wrappers and characters that don't survive
// a Windows filesystem.
package notion

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var (
	hexUUID         = regexp.MustCompile(`[a-f0-9]{32}`)
	trailingHexUUID = regexp.MustCompile(`\s+[a-f0-9]{32}$`)
	bareHexUUID     = regexp.MustCompile(`[a-f0-9]{32}$`)
	dashedUUID      = regexp.MustCompile(`[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}`)
	exportBlock     = regexp.MustCompile(`^ExportBlock-[^/]*/`)
	illegalChars    = regexp.MustCompile(`[<>:"|?*]`)
	multiSpace      = regexp.MustCompile(`\s+`)
)

// CleanPath rewrites a slash-separated relative path from a Notion export
// into a readable one. Each component loses its UUID suffixes, illegal
// characters and excess length; empty components are dropped. An empty
// result becomes "untitled".
func CleanPath(relPath string, maxStemLen int) string {
	cleaned := exportBlock.ReplaceAllString(relPath, "")

	var parts []string
	for _, part := range strings.Split(cleaned, "/") {
		// Notion wraps exports in grouping folders that mean nothing on a website
		if part == "Private & Shared" || part == "Shared" {
			continue
		}
		part = CleanComponent(part, maxStemLen)
		if part != "" {
			parts = append(parts, part)
		}
	}

	result := strings.Join(parts, "/")
	if result == "" {
		return "untitled"
	}
	return result
}

// CleanComponent cleans a single path component. The extension, if any,
// survives the length limit.
func CleanComponent(part string, maxStemLen int) string {
	part = norm.NFC.String(part)

	// Split the extension first: the UUID suffix sits between the title
	// and the extension ("Title <32-hex>.html"), so anchored stripping has
	// to see the bare stem.
	ext := strings.ToLower(path.Ext(part))
	stem := strings.TrimSuffix(part, path.Ext(part))

	stem = trailingHexUUID.ReplaceAllString(stem, "")
	stem = bareHexUUID.ReplaceAllString(stem, "")
	stem = stripDashedUUIDs(stem)
	stem = illegalChars.ReplaceAllString(stem, "")
	stem = multiSpace.ReplaceAllString(stem, " ")

	if len(stem) > maxStemLen {
		stem = stem[:maxStemLen]
	}
	stem = strings.Trim(stem, " .-")
	if stem == "" {
		return strings.Trim(ext, " .-")
	}
	return stem + ext
}

// stripDashedUUIDs removes dashed UUID runs, but only ones that actually
// parse as UUIDs so version-ish strings survive.
func stripDashedUUIDs(s string) string {
	return dashedUUID.ReplaceAllStringFunc(s, func(candidate string) string {
		if _, err := uuid.Parse(candidate); err != nil {
			return candidate
		}
		return ""
	})
}

// ExtractHexUUID returns the first 32-hex UUID found in name, undashing a
// dashed form if that is what is present.
func ExtractHexUUID(name string) (string, bool) {
	if m := hexUUID.FindString(name); m != "" {
		return m, true
	}
	if m := dashedUUID.FindString(name); m != "" {
		if _, err := uuid.Parse(m); err == nil {
			return strings.ToLower(strings.ReplaceAll(m, "-", "")), true
		}
	}
	return "", false
}
