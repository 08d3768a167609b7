package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Start from defaults so a sparse or missing file doesn't zero
	// everything out; env overrides and validation still apply either way
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ProjectDirs: []string{"personal_projects", "professional_projects"},
		},
		Theme: ThemeConfig{
			TitleSuffix:   "",
			MaxTitleLen:   100,
			MaxCaptionLen: 200,
		},
		Extract: ExtractConfig{
			KeepZips:       false,
			MaxNestedDepth: 5,
			WatchDebounce:  2 * time.Second,
		},
		Names: NamesConfig{
			MaxStemLen: 50,
		},
		Assets: AssetsConfig{
			ImageExtensions: []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"},
			AssetExtensions: []string{".css", ".js", ".pdf", ".doc", ".docx"},
		},
		Export: ExportConfig{},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	if root := os.Getenv("NOTIONKIT_SITE_ROOT"); root != "" {
		cfg.Site.Root = root
	}
	if tmpl := os.Getenv("NOTIONKIT_TEMPLATE"); tmpl != "" {
		cfg.Theme.TemplatePath = tmpl
	}
	if suffix := os.Getenv("NOTIONKIT_TITLE_SUFFIX"); suffix != "" {
		cfg.Theme.TitleSuffix = suffix
	}
	if keep := os.Getenv("NOTIONKIT_KEEP_ZIPS"); keep != "" {
		if v, err := strconv.ParseBool(keep); err == nil {
			cfg.Extract.KeepZips = v
		}
	}
	if depth := os.Getenv("NOTIONKIT_MAX_NESTED_DEPTH"); depth != "" {
		if v, err := strconv.Atoi(depth); err == nil {
			cfg.Extract.MaxNestedDepth = v
		}
	}
	if debounce := os.Getenv("NOTIONKIT_WATCH_DEBOUNCE"); debounce != "" {
		if v, err := time.ParseDuration(debounce); err == nil {
			cfg.Extract.WatchDebounce = v
		}
	}
	if out := os.Getenv("NOTIONKIT_EXPORT_DIR"); out != "" {
		cfg.Export.OutputDir = out
	}
}

// validate checks configuration invariants
func validate(cfg *Config) error {
	if cfg.Extract.MaxNestedDepth < 0 {
		return fmt.Errorf("extract.max_nested_depth must be >= 0, got %d", cfg.Extract.MaxNestedDepth)
	}
	if cfg.Extract.WatchDebounce <= 0 {
		return fmt.Errorf("extract.watch_debounce must be positive, got %s", cfg.Extract.WatchDebounce)
	}
	if cfg.Names.MaxStemLen < 1 {
		return fmt.Errorf("names.max_stem_len must be >= 1, got %d", cfg.Names.MaxStemLen)
	}
	if cfg.Theme.MaxTitleLen < 1 {
		return fmt.Errorf("theme.max_title_len must be >= 1, got %d", cfg.Theme.MaxTitleLen)
	}
	for _, ext := range append(append([]string{}, cfg.Assets.ImageExtensions...), cfg.Assets.AssetExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("asset extension %q must start with a dot", ext)
		}
	}
	return nil
}
