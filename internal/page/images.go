package page

import (
	"fmt"
	"html"
	"net/url"
	"path"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

var (
	imgTag = regexp.MustCompile(`<img[^>]*>`)

	// These match the exact shape of the blocks rewriteImages emits, so later
	// passes can find them without guessing at nesting
	imageBlockRun = regexp.MustCompile(
		`(?s)(<div class="image-with-caption">\s*<img[^>]*/>\s*<div class="caption">[^<]*</div>\s*</div>)(\s*<div class="image-with-caption">\s*<img[^>]*/>\s*<div class="caption">[^<]*</div>\s*</div>)+`)
	blockThenParagraph = regexp.MustCompile(
		`(?s)(<div class="image-with-caption">\s*<img[^>]*/>\s*<div class="caption">[^<]*</div>\s*</div>)\s*<p[^>]*>(.*?)</p>`)
	captionDiv = regexp.MustCompile(`<div class="caption">[^<]*</div>`)
)

// genericAlts are alt texts too boring to use as captions.
var genericAlts = map[string]bool{
	"image":         true,
	"photo":         true,
	"picture":       true,
	"gallery image": true,
}

// rewriteImages replaces every <img> with an image-with-caption block. The
// src is URL-decoded and reduced to its bare file name (images travel next
// to the page), and a non-generic alt text becomes the caption.
func (e *Extractor) rewriteImages(content string) string {
	return imgTag.ReplaceAllStringFunc(content, func(tag string) string {
		src, alt := imgAttrs(tag)

		if src != "" {
			if decoded, err := url.PathUnescape(src); err == nil {
				src = decoded
			}
			src = path.Base(strings.ReplaceAll(src, "\\", "/"))
		}

		caption := ""
		if alt != "" && !genericAlts[strings.ToLower(alt)] {
			caption = html.EscapeString(alt)
		}

		return fmt.Sprintf(`<div class="image-with-caption">
  <img alt="%s" src="%s"/>
  <div class="caption">%s</div>
</div>`, html.EscapeString(alt), html.EscapeString(src), caption)
	})
}

// imgAttrs parses src and alt out of a single <img ...> tag. The tokenizer
// copes with attribute orderings and quoting the regexes upstream do not.
func imgAttrs(tag string) (src, alt string) {
	tok := xhtml.NewTokenizer(strings.NewReader(tag))
	for {
		tt := tok.Next()
		if tt == xhtml.ErrorToken {
			return src, alt
		}
		if tt != xhtml.StartTagToken && tt != xhtml.SelfClosingTagToken {
			continue
		}
		token := tok.Token()
		if token.Data != "img" {
			continue
		}
		for _, attr := range token.Attr {
			switch attr.Key {
			case "src":
				src = attr.Val
			case "alt":
				alt = attr.Val
			}
		}
		return src, alt
	}
}

// adoptFollowingCaptions promotes a short paragraph that directly follows an
// image block into that block's caption, a common Notion caption pattern.
func (e *Extractor) adoptFollowingCaptions(content string) string {
	return blockThenParagraph.ReplaceAllStringFunc(content, func(match string) string {
		sub := blockThenParagraph.FindStringSubmatch(match)
		block, paragraph := sub[1], sub[2]

		caption := strings.TrimSpace(anyTag.ReplaceAllString(paragraph, ""))
		if caption == "" || len(caption) >= e.MaxCaptionLen || genericAlts[strings.ToLower(caption)] {
			return match
		}

		return captionDiv.ReplaceAllString(block, `<div class="caption">`+caption+`</div>`)
	})
}

// wrapImageRuns wraps runs of two or more adjacent image blocks in a
// two-column grid, unless the content already carries grid markup.
func wrapImageRuns(content string) string {
	if strings.Contains(content, "image-grid") {
		return content
	}
	return imageBlockRun.ReplaceAllStringFunc(content, func(run string) string {
		return `<div class="image-grid two-column">` + run + `</div>`
	})
}
