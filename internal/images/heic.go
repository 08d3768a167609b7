// Package images converts browser-hostile image formats found in exported
// bundles (HEIC/HEIF) into PNG and repairs the HTML that referenced them.
package images

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jdeng/goheif"
)

// Conversion records one HEIC file rewritten as PNG.
type Conversion struct {
	// OldPath is the original HEIC path (removed after conversion)
	OldPath string
	// NewPath is the PNG written in its place
	NewPath string
}

// IsHEIC reports whether name has a HEIC/HEIF extension, any case.
func IsHEIC(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".heic", ".heif":
		return true
	}
	return false
}

// ConvertTree converts every HEIC/HEIF file under dir to PNG, deleting the
// originals. Files that fail to decode are left in place and counted.
func ConvertTree(dir string) ([]Conversion, int, error) {
	var heics []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && IsHEIC(d.Name()) {
			heics = append(heics, path)
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("images: walk %s: %w", dir, err)
	}
	sort.Strings(heics)

	var conversions []Conversion
	failed := 0
	for _, heicPath := range heics {
		pngPath := strings.TrimSuffix(heicPath, filepath.Ext(heicPath)) + ".png"
		if err := convertFile(heicPath, pngPath); err != nil {
			log.Printf("[WARN] could not convert %s: %v", filepath.Base(heicPath), err)
			failed++
			continue
		}
		if err := os.Remove(heicPath); err != nil {
			log.Printf("[WARN] could not remove %s: %v", filepath.Base(heicPath), err)
		}
		conversions = append(conversions, Conversion{OldPath: heicPath, NewPath: pngPath})
	}

	return conversions, failed, nil
}

func convertFile(heicPath, pngPath string) error {
	f, err := os.Open(heicPath)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := goheif.Decode(f)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := encodePNG(out, img); err != nil {
		out.Close()
		os.Remove(pngPath)
		return fmt.Errorf("encode: %w", err)
	}
	return out.Close()
}

func encodePNG(out *os.File, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(out, img)
}
