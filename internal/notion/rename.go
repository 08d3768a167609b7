package notion

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MappingFile is the name of the rename record written next to a cleaned tree.
const MappingFile = ".notionkit-renames.json"

// Mapping records original -> cleaned relative paths from a cleanup pass.
type Mapping struct {
	Renames map[string]string `json:"renames"`
}

// NewMapping creates an empty rename mapping.
func NewMapping() *Mapping {
	return &Mapping{Renames: make(map[string]string)}
}

// LoadMapping loads a rename mapping from disk. A missing file yields an
// empty mapping.
func LoadMapping(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMapping(), nil
		}
		return nil, err
	}
	defer f.Close()

	var m Mapping
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return nil, err
	}
	if m.Renames == nil {
		m.Renames = make(map[string]string)
	}
	return &m, nil
}

// Merge folds the renames of a later cleanup pass into this mapping. A
// path recorded as A -> B here that the later pass moved B -> C becomes
// A -> C; renames of paths this mapping never saw are added as-is.
func (m *Mapping) Merge(later *Mapping) {
	for from, to := range later.Renames {
		chained := false
		for orig, prev := range m.Renames {
			if prev == from {
				m.Renames[orig] = to
				chained = true
			}
		}
		if !chained {
			m.Renames[from] = to
		}
	}
}

// Save writes the mapping to disk as indented JSON.
func (m *Mapping) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// CleanTree renames every file under dir to its cleaned path, deepest files
// first so children move before their parents collapse. Name collisions are
// resolved with _1, _2, ... suffixes and .htm files become .html. Returns
// the rename mapping and how many files moved.
func CleanTree(dir string, maxStemLen int) (*Mapping, int, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() != MappingFile {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("notion: walk %s: %w", dir, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.Count(files[i], string(os.PathSeparator)) > strings.Count(files[j], string(os.PathSeparator))
	})

	mapping := NewMapping()
	moved := 0

	for _, file := range files {
		rel, err := filepath.Rel(dir, file)
		if err != nil {
			continue
		}
		original := filepath.ToSlash(rel)

		cleaned := CleanPath(original, maxStemLen)
		if strings.HasSuffix(strings.ToLower(cleaned), ".htm") {
			cleaned = cleaned[:len(cleaned)-len(".htm")] + ".html"
		}

		if cleaned == original {
			continue
		}

		target := filepath.Join(dir, filepath.FromSlash(cleaned))
		target = dedupePath(target, file)

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			log.Printf("[WARN] could not prepare directory for %s: %v", cleaned, err)
			continue
		}
		if err := os.Rename(file, target); err != nil {
			log.Printf("[WARN] could not rename %s: %v", original, err)
			continue
		}

		relTarget, _ := filepath.Rel(dir, target)
		mapping.Renames[original] = filepath.ToSlash(relTarget)
		moved++
	}

	return mapping, moved, nil
}

// dedupePath appends _1, _2, ... to the stem until the path no longer
// collides with an existing file (other than the file being moved).
func dedupePath(target, self string) string {
	candidate := target
	for counter := 1; ; counter++ {
		info, err := os.Stat(candidate)
		if err != nil || info == nil {
			return candidate
		}
		if candidate == self {
			return candidate
		}
		ext := filepath.Ext(target)
		stem := strings.TrimSuffix(target, ext)
		candidate = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}
