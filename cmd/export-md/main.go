package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ambersite/notionkit/internal/config"
	"github.com/ambersite/notionkit/internal/export"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config.yaml")
		outputDir  = flag.String("out", "", "Output directory for .md files (overrides config)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: export-md [flags] DIRECTORY")
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

	out := cfg.Export.OutputDir
	if *outputDir != "" {
		out = *outputDir
	}
	if out == "" {
		out = filepath.Join(dir, "md")
	}

	converted, err := export.NewConverter().ConvertTree(dir, out)
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	log.Printf("Converted %d page(s) to Markdown in %s", converted, out)
}
