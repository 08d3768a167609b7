package page

import (
	"fmt"
	"regexp"
	"strings"
)

// columnIndicators are the markers that suggest the page carries its own
// multi-column layout worth preserving.
var columnIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display:\s*flex`),
	regexp.MustCompile(`(?i)display:\s*grid`),
	regexp.MustCompile(`(?i)grid-template-columns`),
	regexp.MustCompile(`(?i)flex-direction:\s*row`),
	regexp.MustCompile(`(?i)class="[^"]*col`),
	regexp.MustCompile(`(?i)class="[^"]*grid`),
	regexp.MustCompile(`(?i)style="[^"]*width:\s*[0-9]+%`),
	regexp.MustCompile(`(?i)style="[^"]*float:\s*(left|right)`),
	regexp.MustCompile(`(?is)<td[^>]*>.*?<img`),
	regexp.MustCompile(`(?i)<div[^>]*style="[^"]*display:\s*inline`),
}

var (
	tableWithImg  = regexp.MustCompile(`(?is)<table[^>]*>.*?<img.*?</table>`)
	tableBlock    = regexp.MustCompile(`(?is)<table[^>]*>(.*?)</table>`)
	tableCellOpen = regexp.MustCompile(`(?i)<td[^>]*>`)
	tableCell     = regexp.MustCompile(`(?is)<td[^>]*>(.*?)</td>`)

	flexStyle   = regexp.MustCompile(`(?i)display:\s*flex`)
	flexOpenTag = regexp.MustCompile(`(?i)<div[^>]*style="[^"]*display:\s*flex[^"]*"[^>]*>`)
	childDiv    = regexp.MustCompile(`(?is)<div[^>]*>.*?</div>`)
	divTag      = regexp.MustCompile(`(?i)</?div[^>]*>`)

	percentWidthStyle = regexp.MustCompile(`(?i)style="[^"]*width:\s*[0-9]+%`)
	percentDivRun     = regexp.MustCompile(`(?s)(<div[^>]*style="[^"]*width:\s*[0-9]+%[^"]*"[^>]*>.*?</div>\s*){2,}`)
	percentDivOpen    = regexp.MustCompile(`(?i)<div[^>]*style="[^"]*width:\s*[0-9]+%`)
	widthDecl         = regexp.MustCompile(`(?i)width:\s*[0-9]+%;?\s*`)

	floatStyle = regexp.MustCompile(`(?i)float:\s*(left|right)`)
	floatedRun = regexp.MustCompile(`(?is)(<[^>]*style="[^"]*float:\s*(left|right)[^"]*"[^>]*>.*?</[^>]*>\s*){2,}`)
	floatDecl  = regexp.MustCompile(`(?i)float:\s*(left|right);?\s*`)
)

// DetectColumnLayout reports whether the content appears to use a
// multi-column layout (tables with images, flexbox, percentage widths,
// floats, grid or column classes).
func DetectColumnLayout(content string) bool {
	for _, indicator := range columnIndicators {
		if indicator.MatchString(content) {
			return true
		}
	}
	return false
}

// PreserveColumnLayout converts detected column structures to the theme's
// image-grid markup so side-by-side arrangements survive theming.
func PreserveColumnLayout(content string) string {
	if tableWithImg.MatchString(content) {
		content = convertTableLayout(content)
	}
	if flexStyle.MatchString(content) {
		content = convertFlexLayout(content)
	}
	if percentWidthStyle.MatchString(content) {
		content = convertPercentageLayout(content)
	}
	if floatStyle.MatchString(content) {
		content = convertFloatLayout(content)
	}
	return content
}

// gridClass picks the grid column class from the number of cells.
func gridClass(count int) string {
	switch {
	case count >= 4:
		return "image-grid four-column"
	case count == 3:
		return "image-grid three-column"
	case count == 2:
		return "image-grid two-column"
	default:
		return "image-grid"
	}
}

// convertTableLayout turns table-based image layouts into grids: each cell
// with an image becomes an image-with-caption block.
func convertTableLayout(content string) string {
	return tableBlock.ReplaceAllStringFunc(content, func(table string) string {
		inner := tableBlock.FindStringSubmatch(table)[1]

		cellCount := len(tableCellOpen.FindAllString(inner, -1))
		cells := tableCell.FindAllStringSubmatch(inner, -1)

		var b strings.Builder
		fmt.Fprintf(&b, `<div class="%s">`, gridClass(cellCount))
		for _, cell := range cells {
			if strings.Contains(cell[1], "<img") {
				fmt.Fprintf(&b, `<div class="image-with-caption">%s<div class="caption"></div></div>`, cell[1])
			} else {
				fmt.Fprintf(&b, `<div>%s</div>`, cell[1])
			}
		}
		b.WriteString(`</div>`)
		return b.String()
	})
}

// convertFlexLayout rewrites flexbox containers as grids sized by their
// child count. Flex rows hold child divs, so the container's close tag is
// found by balanced scanning rather than by regex.
func convertFlexLayout(content string) string {
	var b strings.Builder
	for {
		loc := flexOpenTag.FindStringIndex(content)
		if loc == nil {
			b.WriteString(content)
			return b.String()
		}
		b.WriteString(content[:loc[0]])

		inner, rest, ok := splitBalancedDiv(content[loc[1]:])
		if !ok {
			// Unclosed container, leave the tag alone
			b.WriteString(content[loc[0]:loc[1]])
			content = content[loc[1]:]
			continue
		}

		children := len(childDiv.FindAllString(inner, -1))
		fmt.Fprintf(&b, `<div class="%s">%s</div>`, gridClass(children), inner)
		content = rest
	}
}

// splitBalancedDiv splits s at the </div> matching an already-open div,
// returning the content before it and the remainder after it.
func splitBalancedDiv(s string) (inner, rest string, ok bool) {
	depth := 1
	for _, loc := range divTag.FindAllStringIndex(s, -1) {
		if s[loc[0]+1] == '/' {
			depth--
		} else {
			depth++
		}
		if depth == 0 {
			return s[:loc[0]], s[loc[1]:], true
		}
	}
	return "", "", false
}

// convertPercentageLayout wraps runs of percentage-width divs in a grid and
// strips the width declarations.
func convertPercentageLayout(content string) string {
	return percentDivRun.ReplaceAllStringFunc(content, func(run string) string {
		count := len(percentDivOpen.FindAllString(run, -1))
		cleaned := widthDecl.ReplaceAllString(run, "")
		return fmt.Sprintf(`<div class="%s">%s</div>`, gridClass(count), cleaned)
	})
}

// convertFloatLayout wraps runs of floated elements in a grid and strips
// the float declarations.
func convertFloatLayout(content string) string {
	return floatedRun.ReplaceAllStringFunc(content, func(run string) string {
		count := len(floatDecl.FindAllString(run, -1))
		cleaned := floatDecl.ReplaceAllString(run, "")
		return fmt.Sprintf(`<div class="%s">%s</div>`, gridClass(count), cleaned)
	})
}
