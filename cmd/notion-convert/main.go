// notion-convert is the one-shot path from a Notion export zip to themed
// pages: extract to a temp directory, theme every HTML file flat into an
// output directory named after the archive, and copy the images alongside.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ambersite/notionkit/internal/archive"
	"github.com/ambersite/notionkit/internal/config"
	"github.com/ambersite/notionkit/internal/page"
	"github.com/ambersite/notionkit/internal/site"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config.yaml")
		template   = flag.String("template", "", "Template HTML file (overrides config)")
		force      = flag.Bool("force", false, "Replace an existing output directory")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: notion-convert [flags] EXPORT.zip")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	templatePath := cfg.Theme.TemplatePath
	if *template != "" {
		templatePath = *template
	}

	if err := run(cfg, flag.Arg(0), templatePath, *force); err != nil {
		log.Fatalf("convert: %v", err)
	}
}

func run(cfg *config.Config, zipPath, templatePath string, force bool) error {
	outputDir := archive.OutputDir(zipPath)
	if _, err := os.Stat(outputDir); err == nil {
		if !force {
			return fmt.Errorf("output directory %s already exists (use -force to replace)", outputDir)
		}
		if err := os.RemoveAll(outputDir); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	log.Printf("Created output directory: %s", outputDir)

	tempDir, err := os.MkdirTemp("", "notion-convert-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempDir)

	ex := archive.NewExtractor(cfg.Extract.KeepZips, cfg.Extract.MaxNestedDepth)
	if err := ex.Extract(zipPath, tempDir); err != nil {
		return err
	}

	htmlFiles, err := site.FindHTMLFiles(tempDir, false)
	if err != nil {
		return err
	}
	if len(htmlFiles) == 0 {
		return fmt.Errorf("no HTML files found in %s", zipPath)
	}
	log.Printf("Found %d HTML file(s) to process...", len(htmlFiles))

	tmpl := page.LoadTemplate(templatePath)
	extractor := page.NewExtractor()
	extractor.MaxTitleLen = cfg.Theme.MaxTitleLen
	extractor.MaxCaptionLen = cfg.Theme.MaxCaptionLen
	for _, htmlFile := range htmlFiles {
		data, err := os.ReadFile(htmlFile)
		if err != nil {
			log.Printf("[WARN] read %s: %v", htmlFile, err)
			continue
		}

		extracted := extractor.Extract(string(data), htmlFile)
		themed := tmpl.Render(extracted.Title, extracted.Content)

		outputFile := filepath.Join(outputDir, filepath.Base(htmlFile))
		if err := os.WriteFile(outputFile, []byte(themed), 0o644); err != nil {
			log.Printf("[WARN] write %s: %v", outputFile, err)
			continue
		}
		log.Printf("Created: %s", outputFile)
	}

	copied, err := copyImagesFlat(tempDir, outputDir, cfg.Assets.ImageExtensions)
	if err != nil {
		return err
	}
	if copied > 0 {
		log.Printf("Copied %d image file(s)", copied)
	}

	log.Printf("Processing complete, output directory: %s", outputDir)
	if cfg.Site.Root != "" && len(cfg.Site.ProjectDirs) > 0 {
		log.Printf("You can now copy the folder to:")
		for _, d := range cfg.Site.ProjectDirs {
			log.Printf("  - %s", filepath.Join(cfg.Site.Root, d))
		}
	}
	return nil
}

// copyImagesFlat copies every image under sourceDir into outputDir with
// _N suffixes on name collisions.
func copyImagesFlat(sourceDir, outputDir string, imageExts []string) (int, error) {
	extSet := make(map[string]bool, len(imageExts))
	for _, ext := range imageExts {
		extSet[strings.ToLower(ext)] = true
	}

	copied := 0
	err := filepath.WalkDir(sourceDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !extSet[strings.ToLower(filepath.Ext(path))] {
			return err
		}

		name := filepath.Base(path)
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)

		dest := filepath.Join(outputDir, name)
		for counter := 1; ; counter++ {
			if _, statErr := os.Stat(dest); os.IsNotExist(statErr) {
				break
			}
			dest = filepath.Join(outputDir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}
