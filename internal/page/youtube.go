package page

import (
	"fmt"
	"regexp"
	"strings"
)

// youtubePatterns match watchable YouTube URLs; embed URLs are deliberately
// not matched so already-converted content is left alone.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`https?://(?:www\.)?youtube\.com/watch\?[^"'<>\s]*?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`https?://youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`https?://(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

var (
	youtubeAnchor = regexp.MustCompile(`(?is)<a[^>]*href="([^"]*youtube[^"]*|[^"]*youtu\.be[^"]*)"[^>]*>(.*?)</a>`)
	headingText   = regexp.MustCompile(`(?i)<h[1-6][^>]*>([^<]+)</h[1-6]>`)
	captionPrefix = regexp.MustCompile(`(?i)^(video:|watch:|link:|see:)\s*`)
)

// convertYouTubeLinks replaces YouTube links with responsive 16:9 iframe
// embeds styled to sit in the image gallery. Anchor tags are handled first
// (their text becomes the caption), then bare URLs with a caption mined
// from nearby text.
func (e *Extractor) convertYouTubeLinks(content string) string {
	// Bundle-extracted pages may already carry embeds
	if strings.Contains(content, "youtube.com/embed/") && strings.Contains(content, "<iframe") {
		return content
	}

	content = youtubeAnchor.ReplaceAllStringFunc(content, func(anchor string) string {
		sub := youtubeAnchor.FindStringSubmatch(anchor)
		href, text := sub[1], sub[2]

		id, ok := youtubeVideoID(href)
		if !ok {
			return anchor
		}

		title := strings.TrimSpace(anyTag.ReplaceAllString(text, ""))
		if title == "" || title == href {
			title = "YouTube Video"
		}
		return youtubeEmbed(id, title)
	})

	for _, pattern := range youtubePatterns {
		content = pattern.ReplaceAllStringFunc(content, func(rawURL string) string {
			// Skip URLs that are attribute values of tags we did not convert
			idx := strings.Index(content, rawURL)
			if idx > 0 && (content[idx-1] == '"' || content[idx-1] == '\'') {
				return rawURL
			}

			id, ok := youtubeVideoID(rawURL)
			if !ok {
				return rawURL
			}
			title := e.youtubeTitleFromContext(content, rawURL)
			if title == "" {
				title = fmt.Sprintf("YouTube Video %s", id)
			}
			return youtubeEmbed(id, title)
		})
	}

	return content
}

// youtubeVideoID extracts the 11-character video ID from any supported URL
// form.
func youtubeVideoID(rawURL string) (string, bool) {
	for _, pattern := range youtubePatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// youtubeTitleFromContext mines a caption for a bare URL from up to 200
// characters of preceding text: a heading first, then the text run directly
// before the URL.
func (e *Extractor) youtubeTitleFromContext(content, rawURL string) string {
	idx := strings.Index(content, rawURL)
	if idx < 0 {
		return ""
	}
	start := idx - 200
	if start < 0 {
		start = 0
	}
	before := content[start:idx]

	if headings := headingText.FindAllStringSubmatch(before, -1); len(headings) > 0 {
		title := strings.TrimSpace(headings[len(headings)-1][1])
		if title != "" && len(title) < e.MaxTitleLen {
			return title
		}
	}

	before = strings.TrimRight(before, " \t\r\n")
	if nl := strings.LastIndexByte(before, '\n'); nl >= 0 {
		before = before[nl+1:]
	}
	text := strings.TrimSpace(anyTag.ReplaceAllString(before, ""))
	text = captionPrefix.ReplaceAllString(text, "")
	if text != "" && len(text) < e.MaxTitleLen && !strings.HasPrefix(text, "http") {
		return text
	}
	return ""
}

func youtubeEmbed(videoID, title string) string {
	return fmt.Sprintf(`<div class="image-with-caption">
  <div style="position: relative; width: 100%%; height: 0; padding-bottom: 56.25%%; border-radius: var(--border-radius-small); overflow: hidden; box-shadow: var(--shadow-medium); transition: transform var(--transition-medium);">
    <iframe
        src="https://www.youtube.com/embed/%s"
        style="position: absolute; top: 0; left: 0; width: 100%%; height: 100%%;"
        frameborder="0"
        allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"
        allowfullscreen>
    </iframe>
  </div>
  <div class="caption">%s</div>
</div>`, videoID, title)
}
