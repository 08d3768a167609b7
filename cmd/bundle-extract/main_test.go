package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ambersite/notionkit/internal/config"
	"github.com/ambersite/notionkit/internal/notion"
)

func TestPostExtractRemovesEmptyDirsWithKeepZips(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Emptied By Renames"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	html := "<html><head><title>Page</title></head><body><p>x</p></body></html>"
	if err := os.WriteFile(filepath.Join(dir, "Page.html"), []byte(html), 0o644); err != nil {
		t.Fatalf("write html: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested.zip"), []byte("PK"), 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Extract.KeepZips = true

	if _, err := postExtract(cfg, dir); err != nil {
		t.Fatalf("postExtract: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "Emptied By Renames")); !os.IsNotExist(err) {
		t.Errorf("empty directory survived the cleanup pass")
	}
	if _, err := os.Stat(filepath.Join(dir, "nested.zip")); err != nil {
		t.Errorf("zip file removed despite keep_zips: %v", err)
	}
}

func TestPostExtractMergesExistingRenameMapping(t *testing.T) {
	dir := t.TempDir()

	// Record from an earlier pass whose result still carries UUID noise
	prior := notion.NewMapping()
	prior.Renames["Export/Page abcdefabcdefabcdefabcdefabcdefab.htm"] =
		"Page abcdefabcdefabcdefabcdefabcdefab.html"
	if err := prior.Save(filepath.Join(dir, notion.MappingFile)); err != nil {
		t.Fatalf("save mapping: %v", err)
	}

	html := "<html><head><title>Page</title></head><body><p>x</p></body></html>"
	if err := os.WriteFile(
		filepath.Join(dir, "Page abcdefabcdefabcdefabcdefabcdefab.html"),
		[]byte(html), 0o644); err != nil {
		t.Fatalf("write html: %v", err)
	}

	if _, err := postExtract(config.DefaultConfig(), dir); err != nil {
		t.Fatalf("postExtract: %v", err)
	}

	loaded, err := notion.LoadMapping(filepath.Join(dir, notion.MappingFile))
	if err != nil {
		t.Fatalf("load mapping: %v", err)
	}
	got := loaded.Renames["Export/Page abcdefabcdefabcdefabcdefabcdefab.htm"]
	if got != "Page.html" {
		t.Errorf("merged rename = %q, want Page.html pointing from the original export name", got)
	}
}
