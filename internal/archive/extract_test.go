package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func zipBytes(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractFlatArchive(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	archivePath := filepath.Join(tmp, "bundle.zip")
	writeZip(t, archivePath, map[string][]byte{
		"Page one.html":    []byte("<html><body>one</body></html>"),
		"images/photo.png": []byte{0x89, 'P', 'N', 'G'},
	})

	dest := OutputDir(archivePath)
	require.Equal(t, filepath.Join(tmp, "bundle"), dest)

	e := NewExtractor(false, 5)
	require.NoError(t, e.Extract(archivePath, dest))

	require.FileExists(t, filepath.Join(dest, "Page one.html"))
	require.FileExists(t, filepath.Join(dest, "images", "photo.png"))
}

func TestExtractNestedArchives(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	inner := zipBytes(t, map[string][]byte{
		"inner page.html": []byte("<html>inner</html>"),
	})
	archivePath := filepath.Join(tmp, "outer.zip")
	writeZip(t, archivePath, map[string][]byte{
		"top.html":   []byte("<html>top</html>"),
		"nested.zip": inner,
	})

	dest := filepath.Join(tmp, "outer")
	e := NewExtractor(false, 5)
	require.NoError(t, e.Extract(archivePath, dest))

	require.FileExists(t, filepath.Join(dest, "top.html"))
	require.FileExists(t, filepath.Join(dest, "nested", "inner page.html"))
	// Nested zip cleaned up by default
	require.NoFileExists(t, filepath.Join(dest, "nested.zip"))
}

func TestExtractKeepZips(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	inner := zipBytes(t, map[string][]byte{"a.html": []byte("a")})
	archivePath := filepath.Join(tmp, "outer.zip")
	writeZip(t, archivePath, map[string][]byte{"nested.zip": inner})

	dest := filepath.Join(tmp, "outer")
	e := NewExtractor(true, 5)
	require.NoError(t, e.Extract(archivePath, dest))

	require.FileExists(t, filepath.Join(dest, "nested.zip"))
	require.FileExists(t, filepath.Join(dest, "nested", "a.html"))
}

func TestExtractRejectsZipSlip(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	archivePath := filepath.Join(tmp, "evil.zip")
	writeZip(t, archivePath, map[string][]byte{
		"../escape.txt": []byte("nope"),
	})

	e := NewExtractor(false, 5)
	err := e.Extract(archivePath, filepath.Join(tmp, "out"))
	require.Error(t, err)
	require.NoFileExists(t, filepath.Join(tmp, "escape.txt"))
}

func TestExtractRejectsUnsupportedFormat(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "bundle.rar")
	require.NoError(t, os.WriteFile(path, []byte("not a rar"), 0o644))

	e := NewExtractor(false, 5)
	require.Error(t, e.Extract(path, filepath.Join(tmp, "out")))
}

func TestCleanupZipsAndRemoveEmptyDirs(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "keep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a", "leftover.zip"), []byte("zip"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "keep", "page.html"), []byte("x"), 0o644))

	require.Equal(t, 1, CleanupZips(tmp))
	// a/b and then a are both empty once the zip is gone
	require.Equal(t, 2, RemoveEmptyDirs(tmp))

	require.NoDirExists(t, filepath.Join(tmp, "a"))
	require.DirExists(t, filepath.Join(tmp, "keep"))
}
