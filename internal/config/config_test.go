package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatalf("DefaultConfig() returned nil")
	}

	if cfg.Extract.MaxNestedDepth != 5 {
		t.Errorf("Extract.MaxNestedDepth = %d, want 5", cfg.Extract.MaxNestedDepth)
	}
	if cfg.Extract.KeepZips {
		t.Errorf("Extract.KeepZips = true, want false")
	}
	if cfg.Names.MaxStemLen != 50 {
		t.Errorf("Names.MaxStemLen = %d, want 50", cfg.Names.MaxStemLen)
	}
	if cfg.Theme.MaxTitleLen != 100 {
		t.Errorf("Theme.MaxTitleLen = %d, want 100", cfg.Theme.MaxTitleLen)
	}
	if cfg.Theme.MaxCaptionLen != 200 {
		t.Errorf("Theme.MaxCaptionLen = %d, want 200", cfg.Theme.MaxCaptionLen)
	}
	if len(cfg.Assets.ImageExtensions) == 0 {
		t.Errorf("Assets.ImageExtensions is empty")
	}
	if len(cfg.Site.ProjectDirs) != 2 {
		t.Errorf("Site.ProjectDirs = %v, want two entries", cfg.Site.ProjectDirs)
	}
}

func TestLoadMissingFileReturnsDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "no-such-config.yaml")

	cfg, err := Load(missing)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", missing, err)
	}
	if cfg == nil {
		t.Fatalf("Load(%q) returned nil config", missing)
	}
	if cfg.Names.MaxStemLen != 50 {
		t.Errorf("Names.MaxStemLen = %d, want 50", cfg.Names.MaxStemLen)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "notionkit.yaml")
	yaml := `
theme:
  template_path: /tmp/template.html
  title_suffix: " - Jane Doe"
extract:
  keep_zips: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}

	if cfg.Theme.TemplatePath != "/tmp/template.html" {
		t.Errorf("Theme.TemplatePath = %q, want /tmp/template.html", cfg.Theme.TemplatePath)
	}
	if cfg.Theme.TitleSuffix != " - Jane Doe" {
		t.Errorf("Theme.TitleSuffix = %q", cfg.Theme.TitleSuffix)
	}
	if !cfg.Extract.KeepZips {
		t.Errorf("Extract.KeepZips = false, want true")
	}
	// Untouched sections keep their defaults
	if cfg.Extract.MaxNestedDepth != 5 {
		t.Errorf("Extract.MaxNestedDepth = %d, want 5", cfg.Extract.MaxNestedDepth)
	}
	if cfg.Names.MaxStemLen != 50 {
		t.Errorf("Names.MaxStemLen = %d, want 50", cfg.Names.MaxStemLen)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NOTIONKIT_KEEP_ZIPS", "true")
	t.Setenv("NOTIONKIT_WATCH_DEBOUNCE", "500ms")
	t.Setenv("NOTIONKIT_SITE_ROOT", "/srv/www")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !cfg.Extract.KeepZips {
		t.Errorf("Extract.KeepZips = false, want true from env")
	}
	if cfg.Extract.WatchDebounce != 500*time.Millisecond {
		t.Errorf("Extract.WatchDebounce = %s, want 500ms", cfg.Extract.WatchDebounce)
	}
	if cfg.Site.Root != "/srv/www" {
		t.Errorf("Site.Root = %q, want /srv/www", cfg.Site.Root)
	}
}

func TestLoadValidatesEnvOnMissingFile(t *testing.T) {
	t.Setenv("NOTIONKIT_MAX_NESTED_DEPTH", "-1")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load accepted max_nested_depth -1 from environment")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "bad.yaml")
	yaml := `
names:
  max_stem_len: 0
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("Load(%q) accepted max_stem_len 0", path)
	}
}
