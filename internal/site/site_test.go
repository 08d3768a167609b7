package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindHTMLFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Main.html"), "<p>main</p>")
	writeFile(t, filepath.Join(dir, "sub", "Page.htm"), "<p>sub</p>")
	writeFile(t, filepath.Join(dir, "index.html"), "<p>index</p>")
	writeFile(t, filepath.Join(dir, "style.css"), "body{}")

	files, err := FindHTMLFiles(dir, true)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "Main.html", filepath.Base(files[0]))
	require.Equal(t, "Page.htm", filepath.Base(files[1]))

	files, err = FindHTMLFiles(dir, false)
	require.NoError(t, err)
	require.Len(t, files, 3)
}

func TestFindMainFilePrefersRootLevel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small.html"), "<p>x</p>")
	writeFile(t, filepath.Join(dir, "big.html"), strings.Repeat("<p>content</p>", 100))
	writeFile(t, filepath.Join(dir, "sub", "huge.html"), strings.Repeat("<p>content</p>", 1000))

	files, err := FindHTMLFiles(dir, true)
	require.NoError(t, err)

	// Root files win even when a nested file is larger
	require.Equal(t, "big.html", filepath.Base(FindMainFile(files, dir)))
}

func TestFindMainFileFallsBackToLargest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "small.html"), "<p>x</p>")
	writeFile(t, filepath.Join(dir, "b", "huge.html"), strings.Repeat("<p>content</p>", 100))

	files, err := FindHTMLFiles(dir, true)
	require.NoError(t, err)
	require.Equal(t, "huge.html", filepath.Base(FindMainFile(files, dir)))

	require.Equal(t, "", FindMainFile(nil, dir))
}

func TestWriteIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Main.html"), strings.Repeat("x", 2048))
	writeFile(t, filepath.Join(dir, "sub", "Page.html"), "<p>tiny</p>")

	files, err := FindHTMLFiles(dir, true)
	require.NoError(t, err)

	indexPath, err := WriteIndex(dir, "My Bundle", files)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "index.html"), indexPath)

	data, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	content := string(data)

	require.Contains(t, content, "My Bundle")
	require.Contains(t, content, `href="Main.html"`)
	require.Contains(t, content, `href="sub/Page.html"`)
	require.Contains(t, content, "2 KB")
	require.Contains(t, content, "Root")
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Main.html"), "<p>x</p>")
	writeFile(t, filepath.Join(dir, "index.html"), "<p>index</p>")
	writeFile(t, filepath.Join(dir, "images", "a.png"), "png")
	writeFile(t, filepath.Join(dir, "images", "b.png"), "png")
	writeFile(t, filepath.Join(dir, "docs", "notes.pdf"), "pdf")

	s, err := Summarize(dir, 1)
	require.NoError(t, err)

	require.Equal(t, 1, s.HTMLCount)
	require.Equal(t, 2, s.TypeCounts[".png"])
	require.Equal(t, 1, s.TypeCounts[".pdf"])
	require.Len(t, s.Subdirs, 2)
	require.Equal(t, "docs", s.Subdirs[0].Name)
	require.Equal(t, SubdirInfo{Name: "images", FileCount: 2}, s.Subdirs[1])
}
