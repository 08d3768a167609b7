// Package export converts themed or raw export pages to Markdown files.
package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/ambersite/notionkit/internal/page"
	"github.com/ambersite/notionkit/internal/site"
)

// Converter turns HTML pages into Markdown. Page content goes through the
// extraction pipeline first, so document chrome and scripts never reach the
// Markdown output.
type Converter struct {
	extractor *page.Extractor
	converter *md.Converter
}

// NewConverter returns a ready Converter.
func NewConverter() *Converter {
	return &Converter{
		extractor: page.NewExtractor(),
		converter: md.NewConverter("", true, nil),
	}
}

// ConvertFile converts one HTML file and writes the Markdown next to the
// given output directory under the same stem. The page title becomes a
// top-level heading. Returns the output path.
func (c *Converter) ConvertFile(htmlFile, outputDir string) (string, error) {
	data, err := os.ReadFile(htmlFile)
	if err != nil {
		return "", fmt.Errorf("export: read %s: %w", htmlFile, err)
	}

	extracted := c.extractor.Extract(string(data), htmlFile)
	markdown, err := c.converter.ConvertString(extracted.Content)
	if err != nil {
		return "", fmt.Errorf("export: convert %s: %w", htmlFile, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", extracted.Title)
	b.WriteString(strings.TrimSpace(markdown))
	b.WriteString("\n")

	stem := strings.TrimSuffix(filepath.Base(htmlFile), filepath.Ext(htmlFile))
	outputPath := filepath.Join(outputDir, stem+".md")
	if err := os.WriteFile(outputPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", outputPath, err)
	}
	return outputPath, nil
}

// ConvertTree converts every HTML page under dir into outputDir, flat.
// Returns how many files were written.
func (c *Converter) ConvertTree(dir, outputDir string) (int, error) {
	htmlFiles, err := site.FindHTMLFiles(dir, true)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, fmt.Errorf("export: create %s: %w", outputDir, err)
	}

	converted := 0
	for _, file := range htmlFiles {
		output, err := c.ConvertFile(file, outputDir)
		if err != nil {
			log.Printf("[WARN] %v", err)
			continue
		}
		log.Printf("  converted: %s -> %s", filepath.Base(file), filepath.Base(output))
		converted++
	}
	return converted, nil
}
