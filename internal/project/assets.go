package project

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var srcAttr = regexp.MustCompile(`src="([^"]*)"`)

// copyAndFixImages copies every image the content references into targetDir
// and rewrites the src attributes to the copied filenames. Images are found
// by their decoded path, their bare filename, or a walk of sourceDir.
// HEIC references that survived conversion are replaced with a placeholder
// comment since browsers cannot display them.
func copyAndFixImages(content, sourceDir, targetDir string) string {
	type copied struct{ oldSrc, newName string }
	var copiedImages []copied
	var unsupported []copied

	for _, m := range srcAttr.FindAllStringSubmatch(content, -1) {
		src := m[1]
		if src == "" || strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			continue
		}

		decoded := src
		if d, err := url.PathUnescape(src); err == nil {
			decoded = d
		}
		decoded = filepath.FromSlash(decoded)

		ext := strings.ToLower(filepath.Ext(decoded))
		if ext == ".heic" || ext == ".heif" {
			log.Printf("[WARN] unsupported image format (browsers can't display): %s", filepath.Base(decoded))
			unsupported = append(unsupported, copied{oldSrc: src, newName: filepath.Base(decoded)})
			continue
		}
		sourceFile := findImage(sourceDir, decoded)
		if sourceFile == "" {
			log.Printf("[WARN] image not found: %s", decoded)
			continue
		}

		newName, err := copyDeduped(sourceFile, targetDir)
		if err != nil {
			log.Printf("[WARN] failed to copy %s: %v", filepath.Base(sourceFile), err)
			continue
		}
		copiedImages = append(copiedImages, copied{oldSrc: src, newName: newName})
	}

	for _, c := range copiedImages {
		newSrc := c.newName
		if filepath.Clean(targetDir) != filepath.Clean(sourceDir) {
			newSrc = "./" + c.newName
		}
		content = strings.ReplaceAll(content, `src="`+c.oldSrc+`"`, `src="`+newSrc+`"`)
	}

	for _, u := range unsupported {
		placeholder := fmt.Sprintf("<!-- UNSUPPORTED IMAGE FORMAT: %s (HEIC files not supported by browsers) -->", u.newName)
		imgPattern := regexp.MustCompile(`<img[^>]*src="` + regexp.QuoteMeta(u.oldSrc) + `"[^>]*>`)
		content = imgPattern.ReplaceAllString(content, placeholder)

		figurePattern := regexp.MustCompile(`(?s)<figure[^>]*>.*?<a[^>]*href="[^"]*` +
			regexp.QuoteMeta(u.newName) + `"[^>]*>.*?</a>.*?</figure>`)
		content = figurePattern.ReplaceAllString(content, placeholder)
	}

	return content
}

// findImage locates an image referenced from a page: the path as written,
// the bare filename in sourceDir, then the bare filename anywhere under it.
func findImage(sourceDir, decoded string) string {
	candidates := []string{
		filepath.Join(sourceDir, decoded),
		filepath.Join(sourceDir, filepath.Base(decoded)),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}

	var found string
	filename := filepath.Base(decoded)
	filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if d.Name() == filename {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// copyDeduped copies src into targetDir, suffixing the stem with _1, _2, ...
// when a different file already holds the name. Returns the name used.
func copyDeduped(src, targetDir string) (string, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", err
	}

	name := filepath.Base(src)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for counter := 0; ; counter++ {
		candidate := name
		if counter > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, counter, ext)
		}
		target := filepath.Join(targetDir, candidate)

		info, err := os.Stat(target)
		if os.IsNotExist(err) {
			return candidate, copyFile(src, target)
		}
		if err != nil {
			return "", err
		}
		// Same size means the same image already landed here, reuse it
		if info.Size() == srcInfo.Size() {
			return candidate, nil
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("project: copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}

// CopyAssets copies every non-HTML asset with a recognized extension from
// sourceDir into projectDir, preserving the directory structure.
func CopyAssets(sourceDir, projectDir string, assetExts []string) (int, error) {
	extSet := make(map[string]bool, len(assetExts))
	for _, ext := range assetExts {
		extSet[strings.ToLower(ext)] = true
	}

	copied := 0
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(projectDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := copyFile(path, dest); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("project: copy assets from %s: %w", sourceDir, err)
	}
	return copied, nil
}
