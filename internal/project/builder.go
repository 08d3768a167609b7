package project

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ambersite/notionkit/internal/page"
	"github.com/ambersite/notionkit/internal/site"
)

// BackupDirName holds originals when theming in place.
const BackupDirName = "_original_backups"

var mainFileKeywords = []string{"index", "main", "overview", "introduction"}

// Builder drives project assembly: it themes pages with a Template and
// gathers their images and assets.
type Builder struct {
	Template    *page.Template
	Extractor   *page.Extractor
	TitleSuffix string
	AssetExts   []string
	// Force replaces an existing project directory instead of failing
	Force bool
}

// NewBuilder returns a Builder with the stock extractor.
func NewBuilder(tmpl *page.Template, titleSuffix string, assetExts []string) *Builder {
	return &Builder{
		Template:    tmpl,
		Extractor:   page.NewExtractor(),
		TitleSuffix: titleSuffix,
		AssetExts:   assetExts,
	}
}

// BuildStructure assembles a standalone project directory next to
// sourceDir, named after it with a _project suffix: themed subpages with
// clean names, their images copied alongside, and assets preserved.
// Returns the path of the main project page.
func (b *Builder) BuildStructure(sourceDir string) (string, error) {
	sourceDir = filepath.Clean(sourceDir)
	htmlFiles, err := site.FindHTMLFiles(sourceDir, true)
	if err != nil {
		return "", err
	}
	if len(htmlFiles) == 0 {
		return "", fmt.Errorf("project: no HTML files under %s", sourceDir)
	}

	projectDir := filepath.Join(filepath.Dir(sourceDir), filepath.Base(sourceDir)+"_project")
	if _, err := os.Stat(projectDir); err == nil {
		if !b.Force {
			return "", fmt.Errorf("project: %s already exists (use force to replace)", projectDir)
		}
		if err := os.RemoveAll(projectDir); err != nil {
			return "", fmt.Errorf("project: replace %s: %w", projectDir, err)
		}
	}
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return "", fmt.Errorf("project: create %s: %w", projectDir, err)
	}
	log.Printf("Created project directory: %s", projectDir)

	mapping := SubpageMapping(htmlFiles)
	mainSource := pickMainFile(htmlFiles)

	mainFile := ""
	processed := 0
	for _, file := range htmlFiles {
		output, err := b.themeInto(file, projectDir, mapping)
		if err != nil {
			log.Printf("[WARN] could not process %s: %v", filepath.Base(file), err)
			continue
		}
		if file == mainSource {
			mainFile = output
		}
		processed++
	}
	log.Printf("Successfully processed %d HTML file(s)", processed)

	copied, err := CopyAssets(sourceDir, projectDir, b.AssetExts)
	if err != nil {
		return "", err
	}
	if copied > 0 {
		log.Printf("Copied %d asset file(s) to project directory", copied)
	}

	if mainFile == "" {
		mainFile = filepath.Join(projectDir, projectTitleStem(projectDir)+".html")
	}
	return mainFile, nil
}

// themeInto themes one source page into projectDir under its clean name.
func (b *Builder) themeInto(file, projectDir string, mapping map[string]string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("project: read %s: %w", file, err)
	}

	content := copyAndFixImages(string(data), filepath.Dir(file), projectDir)
	content = fixInternalLinks(content, mapping, file)

	extracted := b.Extractor.Extract(content, file)
	themed := b.Template.Render(extracted.Title, extracted.Content)

	outputName, ok := mapping[file]
	if !ok {
		outputName = filepath.Base(file)
	}
	output := filepath.Join(projectDir, outputName)
	if err := os.WriteFile(output, []byte(themed), 0o644); err != nil {
		return "", fmt.Errorf("project: write %s: %w", output, err)
	}
	log.Printf("  processed: %s -> %s", extracted.Title, outputName)
	return output, nil
}

// Organize distributes themed pages into per-project directories under
// targetBaseDir: each page gets a directory named after its cleaned title
// (site suffix stripped), holding the page under that same name with its
// images copied alongside. Sibling asset files ride along. Returns the
// created project directories.
func (b *Builder) Organize(sourceDir, targetBaseDir string) ([]string, error) {
	sourceDir = filepath.Clean(sourceDir)
	htmlFiles, err := site.FindHTMLFiles(sourceDir, true)
	if err != nil {
		return nil, err
	}
	if len(htmlFiles) == 0 {
		return nil, fmt.Errorf("project: no HTML files under %s", sourceDir)
	}

	var created []string
	for _, file := range htmlFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("[WARN] could not process %s: %v", filepath.Base(file), err)
			continue
		}

		extracted := b.Extractor.Extract(string(data), file)
		dirName := CleanDirName(extracted.Title, b.TitleSuffix)

		projectDir := filepath.Join(targetBaseDir, dirName)
		if err := os.MkdirAll(projectDir, 0o755); err != nil {
			return created, fmt.Errorf("project: create %s: %w", projectDir, err)
		}

		content := copyAndFixImages(string(data), filepath.Dir(file), projectDir)
		output := filepath.Join(projectDir, dirName+".html")
		if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
			return created, fmt.Errorf("project: write %s: %w", output, err)
		}

		if err := copySiblingAssets(filepath.Dir(file), projectDir, b.AssetExts); err != nil {
			return created, err
		}

		log.Printf("  organized: %s -> %s", extracted.Title, projectDir)
		created = append(created, projectDir)
	}
	return created, nil
}

// copySiblingAssets copies asset files sitting next to a page into its
// project directory, non-recursively.
func copySiblingAssets(sourceDir, projectDir string, assetExts []string) error {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return fmt.Errorf("project: read %s: %w", sourceDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range assetExts {
			if ext == strings.ToLower(want) {
				src := filepath.Join(sourceDir, entry.Name())
				if err := copyFile(src, filepath.Join(projectDir, entry.Name())); err != nil {
					return fmt.Errorf("project: copy asset %s: %w", src, err)
				}
				break
			}
		}
	}
	return nil
}

// ApplyInPlace themes every HTML file where it stands, renaming each to its
// clean subpage name. With backups enabled the originals are copied to
// _original_backups/ first, directory structure preserved. Returns how many
// files were themed.
func (b *Builder) ApplyInPlace(dir string, backups bool) (int, error) {
	dir = filepath.Clean(dir)
	htmlFiles, err := site.FindHTMLFiles(dir, true)
	if err != nil {
		return 0, err
	}
	// Re-runs must not theme earlier backups
	kept := htmlFiles[:0]
	for _, f := range htmlFiles {
		if !strings.Contains(f, string(filepath.Separator)+BackupDirName+string(filepath.Separator)) {
			kept = append(kept, f)
		}
	}
	htmlFiles = kept
	if len(htmlFiles) == 0 {
		return 0, fmt.Errorf("project: no HTML files under %s", dir)
	}

	backupDir := ""
	if backups {
		backupDir = filepath.Join(dir, BackupDirName)
		if err := os.MkdirAll(backupDir, 0o755); err != nil {
			return 0, fmt.Errorf("project: create backup dir: %w", err)
		}
		log.Printf("Backups will be saved to: %s", backupDir)
	}

	mapping := SubpageMapping(htmlFiles)

	processed := 0
	for _, file := range htmlFiles {
		if err := b.applyToFile(file, dir, backupDir, mapping); err != nil {
			log.Printf("[WARN] could not process %s: %v", filepath.Base(file), err)
			continue
		}
		processed++
	}
	return processed, nil
}

func (b *Builder) applyToFile(file, rootDir, backupDir string, mapping map[string]string) error {
	if backupDir != "" {
		rel, err := filepath.Rel(rootDir, file)
		if err != nil {
			rel = filepath.Base(file)
		}
		backup := filepath.Join(backupDir, rel)
		if err := os.MkdirAll(filepath.Dir(backup), 0o755); err != nil {
			return fmt.Errorf("project: backup %s: %w", file, err)
		}
		if err := copyFile(file, backup); err != nil {
			return fmt.Errorf("project: backup %s: %w", file, err)
		}
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("project: read %s: %w", file, err)
	}

	fileDir := filepath.Dir(file)
	content := copyAndFixImages(string(data), fileDir, fileDir)
	content = fixInternalLinks(content, mapping, file)

	extracted := b.Extractor.Extract(content, file)
	themed := b.Template.Render(extracted.Title, extracted.Content)

	outputName, ok := mapping[file]
	if !ok {
		outputName = filepath.Base(file)
	}
	output := filepath.Join(fileDir, outputName)
	if err := os.WriteFile(output, []byte(themed), 0o644); err != nil {
		return fmt.Errorf("project: write %s: %w", output, err)
	}
	if output != file {
		os.Remove(file)
	}
	log.Printf("  applied theme: %s -> %s", extracted.Title, outputName)
	return nil
}

// BuildCombined writes one main page into projectDir that concatenates the
// extracted content of every source file, each section under an <h2>
// header and separated by a horizontal rule.
func (b *Builder) BuildCombined(htmlFiles []string, projectDir string) (string, error) {
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return "", fmt.Errorf("project: create %s: %w", projectDir, err)
	}

	projectTitle := titleCaser.String(strings.NewReplacer("_", " ", "-", " ").Replace(projectTitleStem(projectDir)))

	const separator = "<hr style='margin: 3rem 0; border: none; border-top: 1px solid var(--border-color);'>"
	var sections []string
	for _, file := range htmlFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("[WARN] could not process %s: %v", filepath.Base(file), err)
			continue
		}

		content := copyAndFixImages(string(data), filepath.Dir(file), projectDir)
		extracted := b.Extractor.Extract(content, file)

		if !strings.EqualFold(extracted.Title, projectTitle) {
			sections = append(sections, "<h2>"+extracted.Title+"</h2>")
		}
		sections = append(sections, extracted.Content, separator)
	}
	if len(sections) > 0 {
		sections = sections[:len(sections)-1]
	}

	themed := b.Template.Render(projectTitle, strings.Join(sections, "\n\n"))

	mainFile := filepath.Join(projectDir, projectTitleStem(projectDir)+".html")
	if err := os.WriteFile(mainFile, []byte(themed), 0o644); err != nil {
		return "", fmt.Errorf("project: write %s: %w", mainFile, err)
	}
	log.Printf("Created main project file: %s", mainFile)
	return mainFile, nil
}

// pickMainFile prefers a stem carrying an entry-page keyword, else the
// first file.
func pickMainFile(htmlFiles []string) string {
	for _, file := range htmlFiles {
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
		for _, keyword := range mainFileKeywords {
			if strings.Contains(stem, keyword) {
				return file
			}
		}
	}
	return htmlFiles[0]
}

// projectTitleStem strips the _project suffix off a project directory name.
func projectTitleStem(projectDir string) string {
	return strings.TrimSuffix(filepath.Base(projectDir), "_project")
}

var titleCaser = cases.Title(language.English)
