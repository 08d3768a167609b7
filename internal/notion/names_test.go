package notion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanPathStripsUUIDNoise(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "trailing hex uuid",
			in:   "My Project 0123456789abcdef0123456789abcdef/Overview 0123456789abcdef0123456789abcdef.html",
			want: "My Project/Overview.html",
		},
		{
			name: "export block prefix",
			in:   "ExportBlock-1234abcd/Private & Shared/Page abcdefabcdefabcdefabcdefabcdefab.html",
			want: "Page.html",
		},
		{
			name: "dashed uuid",
			in:   "Notes 01234567-89ab-cdef-0123-456789abcdef.html",
			want: "Notes.html",
		},
		{
			name: "illegal characters",
			in:   `What? A "page": with|crud*.html`,
			want: "What A page withcrud.html",
		},
		{
			name: "collapsed whitespace",
			in:   "Too   many    spaces.html",
			want: "Too many spaces.html",
		},
		{
			name: "everything stripped",
			in:   "0123456789abcdef0123456789abcdef",
			want: "untitled",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, CleanPath(tt.in, 50))
		})
	}
}

func TestCleanComponentStripsUUIDBeforeExtension(t *testing.T) {
	t.Parallel()

	// The UUID sits between the title and the extension in exported names;
	// both file and directory components must lose it.
	require.Equal(t, "Overview.html",
		CleanComponent("Overview 0123456789abcdef0123456789abcdef.html", 50))
	require.Equal(t, "Overview",
		CleanComponent("Overview 0123456789abcdef0123456789abcdef", 50))
}

func TestCleanComponentKeepsExtensionWhenTruncating(t *testing.T) {
	t.Parallel()

	long := "An incredibly long page name that keeps going well past the limit.html"
	got := CleanComponent(long, 20)
	require.Equal(t, ".html", filepath.Ext(got))
	require.LessOrEqual(t, len(got), 20+len(".html"))
}

func TestCleanComponentLeavesVersionStringsAlone(t *testing.T) {
	t.Parallel()

	// Looks dashed-uuid-adjacent but does not parse as one
	require.Equal(t, "release-2024", CleanComponent("release-2024", 50))
}

func TestExtractHexUUID(t *testing.T) {
	t.Parallel()

	got, ok := ExtractHexUUID("Overview 0123456789abcdef0123456789abcdef.html")
	require.True(t, ok)
	require.Equal(t, "0123456789abcdef0123456789abcdef", got)

	got, ok = ExtractHexUUID("https://www.notion.so/Page-01234567-89ab-cdef-0123-456789abcdef")
	require.True(t, ok)
	require.Equal(t, "0123456789abcdef0123456789abcdef", got)

	_, ok = ExtractHexUUID("plain.html")
	require.False(t, ok)
}

func TestCleanTreeRenamesAndRecordsMapping(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	sub := filepath.Join(tmp, "Project abcdefabcdefabcdefabcdefabcdefab")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(sub, "Page one abcdefabcdefabcdefabcdefabcdefab.htm"),
		[]byte("<html>one</html>"), 0o644))

	mapping, moved, err := CleanTree(tmp, 50)
	require.NoError(t, err)
	require.Equal(t, 1, moved)

	require.FileExists(t, filepath.Join(tmp, "Project", "Page one.html"))
	require.Equal(t, "Project/Page one.html",
		mapping.Renames["Project abcdefabcdefabcdefabcdefabcdefab/Page one abcdefabcdefabcdefabcdefabcdefab.htm"])
}

func TestCleanTreeDeduplicatesCollisions(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	// Both clean to "Page.html"
	require.NoError(t, os.WriteFile(
		filepath.Join(tmp, "Page 0123456789abcdef0123456789abcdef.html"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(tmp, "Page abcdefabcdefabcdefabcdefabcdefab.html"), []byte("b"), 0o644))

	_, moved, err := CleanTree(tmp, 50)
	require.NoError(t, err)
	require.Equal(t, 2, moved)

	require.FileExists(t, filepath.Join(tmp, "Page.html"))
	require.FileExists(t, filepath.Join(tmp, "Page_1.html"))
}

func TestMappingMergeChainsRenames(t *testing.T) {
	t.Parallel()

	first := NewMapping()
	first.Renames["Page abcdefabcdefabcdefabcdefabcdefab.htm"] = "Page_raw.html"
	first.Renames["Other.html"] = "Other clean.html"

	second := NewMapping()
	second.Renames["Page_raw.html"] = "Page.html"
	second.Renames["New one.html"] = "New.html"

	first.Merge(second)

	// A chained rename keeps pointing from the original export name
	require.Equal(t, "Page.html", first.Renames["Page abcdefabcdefabcdefabcdefabcdefab.htm"])
	require.NotContains(t, first.Renames, "Page_raw.html")
	require.Equal(t, "Other clean.html", first.Renames["Other.html"])
	require.Equal(t, "New.html", first.Renames["New one.html"])
}

func TestMappingRoundTrip(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, MappingFile)

	m := NewMapping()
	m.Renames["a b.html"] = "a b clean.html"
	require.NoError(t, m.Save(path))

	loaded, err := LoadMapping(path)
	require.NoError(t, err)
	require.Equal(t, "a b clean.html", loaded.Renames["a b.html"])

	empty, err := LoadMapping(filepath.Join(tmp, "missing.json"))
	require.NoError(t, err)
	require.Empty(t, empty.Renames)
}
