package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ambersite/notionkit/internal/config"
	"github.com/ambersite/notionkit/internal/page"
	"github.com/ambersite/notionkit/internal/project"
	"github.com/ambersite/notionkit/internal/site"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config.yaml")
		template   = flag.String("template", "", "Template HTML file (overrides config)")
		inPlace    = flag.Bool("in-place", false, "Theme files where they stand instead of building a project directory")
		noBackup   = flag.Bool("no-backup", false, "Skip _original_backups/ copies in in-place mode")
		combined   = flag.Bool("combined", false, "Also build one combined page out of all content")
		organize   = flag.String("organize", "", "Distribute pages into per-project directories under this base directory")
		force      = flag.Bool("force", false, "Replace an existing project directory")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: apply-theme [flags] DIRECTORY")
		flag.PrintDefaults()
		os.Exit(2)
	}
	dir := flag.Arg(0)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Fatalf("not a directory: %s", dir)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	templatePath := cfg.Theme.TemplatePath
	if *template != "" {
		templatePath = *template
	}

	b := project.NewBuilder(page.LoadTemplate(templatePath), cfg.Theme.TitleSuffix, cfg.Assets.AssetExtensions)
	b.Force = *force
	b.Extractor.MaxTitleLen = cfg.Theme.MaxTitleLen
	b.Extractor.MaxCaptionLen = cfg.Theme.MaxCaptionLen

	if *organize != "" {
		created, err := b.Organize(dir, *organize)
		if err != nil {
			log.Fatalf("organize projects: %v", err)
		}
		log.Printf("Organized %d project(s) under %s", len(created), *organize)
		return
	}

	if *inPlace {
		processed, err := b.ApplyInPlace(dir, !*noBackup)
		if err != nil {
			log.Fatalf("apply theme: %v", err)
		}
		log.Printf("Processing complete, themed %d file(s)", processed)
		return
	}

	mainFile, err := b.BuildStructure(dir)
	if err != nil {
		log.Fatalf("build project: %v", err)
	}
	projectDir := filepath.Dir(mainFile)

	if *combined {
		htmlFiles, err := site.FindHTMLFiles(dir, true)
		if err != nil {
			log.Fatalf("scan %s: %v", dir, err)
		}
		if _, err := b.BuildCombined(htmlFiles, projectDir); err != nil {
			log.Fatalf("build combined page: %v", err)
		}
	}

	log.Printf("Project structure created")
	log.Printf("Project directory: %s", projectDir)
	log.Printf("Main project file: %s", mainFile)
	if cfg.Site.Root != "" && len(cfg.Site.ProjectDirs) > 0 {
		log.Printf("You can now copy %s to:", filepath.Base(projectDir))
		for _, d := range cfg.Site.ProjectDirs {
			log.Printf("  - %s", filepath.Join(cfg.Site.Root, d))
		}
	}
}
