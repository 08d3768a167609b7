package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

type indexFile struct {
	Name string
	Path string
	Size int64
}

func (f indexFile) SizeLabel() string {
	if kb := f.Size / 1024; kb > 0 {
		return fmt.Sprintf("%d KB", kb)
	}
	return fmt.Sprintf("%d bytes", f.Size)
}

type indexGroup struct {
	Dir   string
	Files []indexFile
}

type indexData struct {
	BundleName string
	Groups     []indexGroup
	FileCount  int
	TotalKB    int64
}

// WriteIndex generates a styled index.html in outputDir listing every HTML
// file grouped by directory, with sizes and counts. Returns the index path.
func WriteIndex(outputDir, bundleName string, htmlFiles []string) (string, error) {
	data := indexData{BundleName: bundleName, FileCount: len(htmlFiles)}

	groups := map[string][]indexFile{}
	for _, f := range htmlFiles {
		rel, err := filepath.Rel(outputDir, f)
		if err != nil {
			rel = filepath.Base(f)
		}
		dir := filepath.Dir(rel)
		if dir == "." {
			dir = "Root"
		}
		size := fileSize(f)
		groups[dir] = append(groups[dir], indexFile{
			Name: filepath.Base(f),
			Path: filepath.ToSlash(rel),
			Size: size,
		})
		data.TotalKB += size
	}
	data.TotalKB /= 1024

	dirs := make([]string, 0, len(groups))
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		data.Groups = append(data.Groups, indexGroup{Dir: dir, Files: groups[dir]})
	}

	var b strings.Builder
	if err := indexTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("site: render index: %w", err)
	}

	indexPath := filepath.Join(outputDir, "index.html")
	if err := os.WriteFile(indexPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("site: write index: %w", err)
	}
	return indexPath, nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.BundleName}} - HTML Bundle Index</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
        }

        .container {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 15px;
            padding: 30px;
            box-shadow: 0 20px 40px rgba(0,0,0,0.1);
        }

        h1 {
            color: #2c3e50;
            text-align: center;
            margin-bottom: 30px;
            font-size: 2.5em;
        }

        .stats {
            display: flex;
            justify-content: space-around;
            margin: 20px 0;
            padding: 20px;
            background: linear-gradient(45deg, #3498db, #2980b9);
            border-radius: 10px;
            color: white;
            text-align: center;
        }

        .stat-item {
            flex: 1;
        }

        .stat-number {
            font-size: 2em;
            font-weight: bold;
            display: block;
        }

        .section {
            margin: 30px 0;
            padding: 20px;
            background: #f8f9fa;
            border-radius: 10px;
            border-left: 5px solid #3498db;
        }

        .section h2 {
            color: #2c3e50;
            margin-top: 0;
            font-size: 1.5em;
        }

        .file-grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(300px, 1fr));
            gap: 15px;
            margin-top: 15px;
        }

        .file-card {
            background: white;
            border: 1px solid #ddd;
            border-radius: 8px;
            padding: 15px;
            transition: all 0.3s ease;
            box-shadow: 0 2px 5px rgba(0,0,0,0.1);
        }

        .file-card:hover {
            transform: translateY(-2px);
            box-shadow: 0 5px 15px rgba(0,0,0,0.2);
            border-color: #3498db;
        }

        .file-name {
            font-weight: bold;
            color: #2c3e50;
            text-decoration: none;
            display: block;
            margin-bottom: 5px;
            font-size: 1.1em;
        }

        .file-name:hover {
            color: #3498db;
        }

        .file-size {
            background: #ecf0f1;
            padding: 2px 8px;
            border-radius: 12px;
            font-size: 0.8em;
            display: inline-block;
            margin-top: 5px;
        }

        .footer {
            text-align: center;
            margin-top: 40px;
            color: #666;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.BundleName}}</h1>
        <p style="text-align: center; font-size: 1.2em; color: #666;">HTML Bundle Contents</p>

        <div class="stats">
            <div class="stat-item">
                <span class="stat-number">{{.FileCount}}</span>
                <span>HTML Files</span>
            </div>
            <div class="stat-item">
                <span class="stat-number">{{len .Groups}}</span>
                <span>Directories</span>
            </div>
            <div class="stat-item">
                <span class="stat-number">{{.TotalKB}}</span>
                <span>KB Total</span>
            </div>
        </div>
{{range .Groups}}
        <div class="section">
            <h2>{{.Dir}}</h2>
            <div class="file-grid">
{{range .Files}}
                <div class="file-card">
                    <a href="{{.Path}}" class="file-name" target="_blank">{{.Name}}</a>
                    <div class="file-info">
                        <span class="file-size">{{.SizeLabel}}</span>
                    </div>
                </div>
{{end}}
            </div>
        </div>
{{end}}
        <div class="footer">
            <p>Click on any file name to open it in a new tab</p>
        </div>
    </div>
</body>
</html>
`))
