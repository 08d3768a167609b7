package config

import (
	"time"
)

// Config represents the global application configuration
type Config struct {
	// Site configuration (target website layout)
	Site SiteConfig `yaml:"site"`

	// Theme configuration (template and title handling)
	Theme ThemeConfig `yaml:"theme"`

	// Extract configuration (archive handling)
	Extract ExtractConfig `yaml:"extract"`

	// Names configuration (filename cleanup)
	Names NamesConfig `yaml:"names"`

	// Assets configuration (which files travel with a page)
	Assets AssetsConfig `yaml:"assets"`

	// Export configuration (Markdown export)
	Export ExportConfig `yaml:"export"`
}

// SiteConfig describes the website the converted pages are destined for
type SiteConfig struct {
	// Root of the website checkout. Only used for hints in final output.
	Root string `yaml:"root"`

	// Directories under Root where finished project folders get dropped
	ProjectDirs []string `yaml:"project_dirs"`
}

// ThemeConfig controls template loading and title handling
type ThemeConfig struct {
	// TemplatePath points at an HTML file containing {{TITLE}} and {{CONTENT}}
	// placeholders. Empty or missing file falls back to the built-in template.
	TemplatePath string `yaml:"template_path"`

	// TitleSuffix is stripped from page titles when deriving directory names,
	// e.g. " - Jane Doe"
	TitleSuffix string `yaml:"title_suffix"`

	// MaxTitleLen rejects heuristic title candidates longer than this
	MaxTitleLen int `yaml:"max_title_len"`

	// MaxCaptionLen rejects caption candidates longer than this
	MaxCaptionLen int `yaml:"max_caption_len"`
}

// ExtractConfig controls archive extraction
type ExtractConfig struct {
	// KeepZips leaves nested ZIP files in place after extraction
	KeepZips bool `yaml:"keep_zips"`

	// MaxNestedDepth bounds recursive extraction of ZIPs inside ZIPs
	MaxNestedDepth int `yaml:"max_nested_depth"`

	// WatchDebounce is how long the drop-folder watcher waits for the
	// filesystem to settle before extracting
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// NamesConfig controls filename cleanup
type NamesConfig struct {
	// MaxStemLen truncates cleaned filename stems (extension preserved)
	MaxStemLen int `yaml:"max_stem_len"`
}

// AssetsConfig lists file extensions treated as page assets
type AssetsConfig struct {
	// Images are copied next to the page and may be grid-wrapped
	ImageExtensions []string `yaml:"image_extensions"`

	// Other assets are copied with their directory structure preserved
	AssetExtensions []string `yaml:"asset_extensions"`
}

// ExportConfig controls Markdown export
type ExportConfig struct {
	// OutputDir receives .md files; empty means "<input dir>/md"
	OutputDir string `yaml:"output_dir"`
}
