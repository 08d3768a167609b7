// Package page turns raw exported HTML into themed website pages: it pulls
// out a title and the usable content, reshapes images and layouts into the
// site's grid classes, and wraps the result in the theme template. The
// transformations are regex heuristics tuned for Notion's export format; a
// strict HTML rewrite is explicitly not the goal.
package page

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Page is the extraction result fed into a Template.
type Page struct {
	Title   string
	Content string
}

// Extractor holds the heuristics' tunables.
type Extractor struct {
	// MaxTitleLen rejects title candidates longer than this
	MaxTitleLen int
	// MaxCaptionLen rejects caption candidates longer than this
	MaxCaptionLen int
}

// NewExtractor returns an extractor with the stock limits.
func NewExtractor() *Extractor {
	return &Extractor{MaxTitleLen: 100, MaxCaptionLen: 200}
}

var (
	doctypeTag   = regexp.MustCompile(`(?i)<!DOCTYPE[^>]*>`)
	htmlOpenTag  = regexp.MustCompile(`(?i)<html[^>]*>`)
	htmlCloseTag = regexp.MustCompile(`(?i)</html>`)
	headBlock    = regexp.MustCompile(`(?is)<head>.*?</head>`)
	bodyOpenTag  = regexp.MustCompile(`(?i)<body[^>]*>`)
	bodyCloseTag = regexp.MustCompile(`(?i)</body>`)
	scriptBlock  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)

	notionWrapper = regexp.MustCompile(`(?i)<div[^>]*class="[^"]*notion[^"]*"[^>]*>`)
	pageWrapper   = regexp.MustCompile(`(?i)<div[^>]*class="[^"]*page[^"]*"[^>]*>`)

	titleCaser = cases.Title(language.English)
)

// Extract pulls the title and themed content out of raw HTML. filePath is
// only used for the title fallback.
func (e *Extractor) Extract(html, filePath string) Page {
	title := e.extractTitle(html, filePath)

	content := doctypeTag.ReplaceAllString(html, "")
	content = htmlOpenTag.ReplaceAllString(content, "")
	content = htmlCloseTag.ReplaceAllString(content, "")
	content = headBlock.ReplaceAllString(content, "")
	content = bodyOpenTag.ReplaceAllString(content, "")
	content = bodyCloseTag.ReplaceAllString(content, "")
	content = scriptBlock.ReplaceAllString(content, "")

	// Multi-column layouts are reshaped before images are rewritten so the
	// grid classes survive
	layoutPreserved := false
	if DetectColumnLayout(content) {
		content = PreserveColumnLayout(content)
		layoutPreserved = true
	}

	content = notionWrapper.ReplaceAllString(content, "<div>")
	content = pageWrapper.ReplaceAllString(content, "<div>")

	content = e.rewriteImages(content)
	content = e.adoptFollowingCaptions(content)

	if !layoutPreserved {
		content = wrapImageRuns(content)
	}

	content = e.convertYouTubeLinks(content)

	return Page{Title: title, Content: strings.TrimSpace(content)}
}

// extractTitle tries the document's own title markers before falling back
// to a prettified file stem.
func (e *Extractor) extractTitle(html, filePath string) string {
	fallback := titleFromStem(filePath)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fallback
	}

	for _, selector := range []string{"title", "h1", "h2", ".title", ".page-title"} {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		text = strings.TrimSpace(anyTag.ReplaceAllString(text, ""))
		if text != "" && len(text) < e.MaxTitleLen {
			return text
		}
	}
	return fallback
}

func titleFromStem(filePath string) string {
	stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "Project"
	}
	return titleCaser.String(stem)
}
