package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ambersite/notionkit/internal/archive"
	"github.com/ambersite/notionkit/internal/config"
	"github.com/ambersite/notionkit/internal/images"
	"github.com/ambersite/notionkit/internal/links"
	"github.com/ambersite/notionkit/internal/notion"
	"github.com/ambersite/notionkit/internal/site"
	"github.com/ambersite/notionkit/internal/watch"
)

func main() {
	var (
		configPath   = flag.String("config", "config.yaml", "Path to config.yaml")
		keepZips     = flag.Bool("keep-zips", false, "Keep nested zip files after extraction")
		maxDepth     = flag.Int("max-depth", 0, "Override nested archive recursion depth")
		reprocessDir = flag.String("reprocess", "", "Re-run cleanup passes on an already extracted directory")
		watchDir     = flag.String("watch", "", "Watch a drop folder and extract every zip that appears")
		force        = flag.Bool("force", false, "Extract into the output directory even if it already exists")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *keepZips {
		cfg.Extract.KeepZips = true
	}
	if *maxDepth > 0 {
		cfg.Extract.MaxNestedDepth = *maxDepth
	}

	switch {
	case *reprocessDir != "":
		log.Printf("Reprocessing extracted directory: %s", *reprocessDir)
		if _, err := postExtract(cfg, *reprocessDir); err != nil {
			log.Fatalf("reprocess %s: %v", *reprocessDir, err)
		}

	case *watchDir != "":
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if err := runWatch(ctx, cfg, *watchDir); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("watch %s: %v", *watchDir, err)
		}

	default:
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: bundle-extract [flags] ARCHIVE.zip")
			flag.PrintDefaults()
			os.Exit(2)
		}
		mainFile, err := processArchive(cfg, flag.Arg(0), *force)
		if err != nil {
			log.Fatalf("extract: %v", err)
		}
		if mainFile != "" {
			log.Printf("Main page: %s", mainFile)
		}
	}
}

// processArchive extracts one bundle into a sibling directory and runs the
// full cleanup pipeline over it.
func processArchive(cfg *config.Config, archivePath string, force bool) (string, error) {
	outputDir := archive.OutputDir(archivePath)
	if _, err := os.Stat(outputDir); err == nil && !force {
		return "", fmt.Errorf("output directory %s already exists (use -force to extract anyway)", outputDir)
	}
	log.Printf("Extracting %s -> %s", archivePath, outputDir)

	ex := archive.NewExtractor(cfg.Extract.KeepZips, cfg.Extract.MaxNestedDepth)
	if err := ex.Extract(archivePath, outputDir); err != nil {
		return "", err
	}
	return postExtract(cfg, outputDir)
}

// postExtract cleans filenames, converts HEIC images, repairs internal
// links and generates the index for an extracted directory. Returns the
// bundle's main page.
func postExtract(cfg *config.Config, dir string) (string, error) {
	// A reprocess run consults the mapping of the earlier pass so the
	// record keeps pointing from the original export names
	mappingPath := filepath.Join(dir, notion.MappingFile)
	mapping, err := notion.LoadMapping(mappingPath)
	if err != nil {
		log.Printf("[WARN] could not load rename mapping: %v", err)
		mapping = notion.NewMapping()
	}

	pass, renamed, err := notion.CleanTree(dir, cfg.Names.MaxStemLen)
	if err != nil {
		return "", err
	}
	if renamed > 0 {
		log.Printf("Cleaned %d file/directory name(s)", renamed)
		mapping.Merge(pass)
		if err := mapping.Save(mappingPath); err != nil {
			log.Printf("[WARN] could not save rename mapping: %v", err)
		}
	}

	conversions, failed, err := images.ConvertTree(dir)
	if err != nil {
		return "", err
	}
	if failed > 0 {
		log.Printf("[WARN] %d HEIC file(s) could not be converted", failed)
	}
	if len(conversions) > 0 {
		log.Printf("Converted %d HEIC image(s) to PNG", len(conversions))
		if _, err := images.RewriteReferences(dir, conversions); err != nil {
			return "", err
		}
	}

	if !cfg.Extract.KeepZips {
		if n := archive.CleanupZips(dir); n > 0 {
			log.Printf("Removed %d leftover zip file(s)", n)
		}
	}
	// Renames leave empty directories behind even when zips are kept
	archive.RemoveEmptyDirs(dir)

	htmlFiles, err := site.FindHTMLFiles(dir, true)
	if err != nil {
		return "", err
	}
	if len(htmlFiles) == 0 {
		log.Printf("[WARN] no HTML files found in %s", dir)
		return "", nil
	}

	fixed, err := links.FixTree(htmlFiles)
	if err != nil {
		return "", err
	}
	if fixed > 0 {
		log.Printf("Fixed internal links in %d file(s)", fixed)
	}

	indexPath, err := site.WriteIndex(dir, filepath.Base(dir), htmlFiles)
	if err != nil {
		return "", err
	}
	log.Printf("Created index: %s", indexPath)

	summary, err := site.Summarize(dir, len(htmlFiles))
	if err == nil {
		summary.Log()
	}

	return site.FindMainFile(htmlFiles, dir), nil
}

// runWatch extracts every archive dropped into dir until interrupted.
func runWatch(ctx context.Context, cfg *config.Config, dir string) error {
	w, err := watch.NewDropWatcher(dir, cfg.Extract.WatchDebounce, func(archivePath string) {
		if _, err := processArchive(cfg, archivePath, true); err != nil {
			log.Printf("[ERROR] %s: %v", filepath.Base(archivePath), err)
		}
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
