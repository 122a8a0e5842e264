package converter

import (
	"fmt"
	"regexp"
	"strings"
)

// The copyright page arrives as a flat run of styled paragraphs. Three
// passes turn it into structured markup: style-class paragraphs are
// promoted to headings, consecutive plain paragraphs are clustered into
// lists, and the whole body is renumbered so generated and promoted
// elements end up with deterministic, collision-free identifiers.
var (
	// "nonindent1" paragraphs become the page heading; "nonindent"
	// paragraphs mentioning the bestellers marker become subheadings.
	h1PromoRe = regexp.MustCompile(`(?s)<p\s+class=["']nonindent1["']([^>]*)>(.*?)</p>`)
	h2PromoRe = regexp.MustCompile(`(?is)<p\s+class=["']nonindent["']([^>]*)>(.*?Bestellers[^<]*?)</p>`)

	paraLineRe     = regexp.MustCompile(`(?s)<p([^>]*)>(.*?)</p>`)
	specialClassRe = regexp.MustCompile(`class=["'](nonindent|crt)`)
	headingLineRe  = regexp.MustCompile(`<h[1-6]`)

	headOpenRe    = regexp.MustCompile(`(?i)<head`)
	headCloseRe   = regexp.MustCompile(`(?i)</head`)
	headSectionRe = regexp.MustCompile(`(?si)<head>.*?</head>`)
	bodySectionRe = regexp.MustCompile(`(?si)<body>.*?</body>`)
	metaLineRe    = regexp.MustCompile(`(?i)<(link|meta|script|style|title)`)

	ulOpenRe    = regexp.MustCompile(`(?i)<ul([^>]*)>`)
	liOpenRe    = regexp.MustCompile(`(?i)<li([^>]*)>`)
	blockOpenRe = regexp.MustCompile(`(?i)<(h[1-6]|p|div|section)((?:\s+[^>]*?)?)>`)
	stripIDRe   = regexp.MustCompile(`\s+id=["'][^"']+["']`)
)

// RestructureCopyright applies the copyright-page transform to an
// assembled page document. pageNumber <= 0 falls back to the page's
// customary front-matter position.
func RestructureCopyright(content string, pageNumber int) string {
	content = h1PromoRe.ReplaceAllString(content, "<h1${1}>${2}</h1>")
	content = h2PromoRe.ReplaceAllString(content, "<h2${1}>${2}</h2>")
	content = clusterLists(content)
	return renumberBody(content, pageNumber)
}

// isListCandidate reports whether a paragraph line qualifies as a
// list-item candidate and returns its trimmed content.
func isListCandidate(line string) (string, bool) {
	m := paraLineRe.FindStringSubmatch(line)
	if m == nil || specialClassRe.MatchString(m[1]) {
		return "", false
	}
	content := strings.TrimSpace(m[2])
	if content == "" || content == "&#x00A0;" || content == "&nbsp;" {
		return "", false
	}
	return content, true
}

// clusterLists groups runs of two or more consecutive list-item
// candidate paragraphs into a single list container. A run stops at the
// first heading, styled special paragraph, or non-paragraph non-blank
// line; a run of one stays a plain paragraph.
func clusterLists(content string) string {
	lines := strings.Split(content, "\n")
	var out []string

	for i := 0; i < len(lines); {
		line := lines[i]
		if _, ok := isListCandidate(line); ok {
			var items []string
			j := i
			for j < len(lines) {
				cur := lines[j]
				curPara := paraLineRe.FindStringSubmatch(cur)
				if headingLineRe.MatchString(cur) ||
					(curPara != nil && specialClassRe.MatchString(curPara[1])) ||
					(curPara == nil && strings.TrimSpace(cur) != "") {
					break
				}
				if item, ok := isListCandidate(cur); ok {
					items = append(items, item)
					j++
					continue
				}
				break
			}
			if len(items) >= 2 {
				out = append(out, `            <ul class="bestellers_list">`)
				for _, item := range items {
					out = append(out, fmt.Sprintf("                <li>%s</li>", item))
				}
				out = append(out, "            </ul>")
				i = j
				continue
			}
		}
		out = append(out, line)
		i++
	}

	return strings.Join(out, "\n")
}

// renumberBody reassigns sequential identifiers over the page body,
// giving list containers "page_<n>_<c>" ids and their items
// "<listId>_<index>". Head content is passed through untouched. The
// pagebreak marker keeps its own id.
func renumberBody(content string, pageNumber int) string {
	pageNum := pageNumber
	if pageNum <= 0 {
		pageNum = 3
	}

	// The composer calls this before the closing shell is appended, so
	// a complete <body>..</body> block is usually absent; in that case
	// the whole content is scanned with head tracking.
	headSection := headSectionRe.FindString(content)
	bodySection := bodySectionRe.FindString(content)
	bodyContent := bodySection
	if bodySection == "" {
		bodyContent = content
	}

	counter := 0
	currentListID := ""
	itemCounter := 0
	inHead := false

	lines := strings.Split(bodyContent, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if headOpenRe.MatchString(line) {
			inHead = true
			out = append(out, line)
			continue
		}
		if headCloseRe.MatchString(line) {
			inHead = false
			out = append(out, line)
			continue
		}
		if inHead || strings.Contains(line, "pagebreak") || metaLineRe.MatchString(line) {
			out = append(out, line)
			continue
		}

		ulMatch := ulOpenRe.FindStringSubmatch(line)
		if ulMatch != nil {
			counter++
			currentListID = fmt.Sprintf("page_%d_%d", pageNum, counter)
			itemCounter = 0
			line = ulOpenRe.ReplaceAllLiteralString(line,
				"<ul"+withID(ulMatch[1], currentListID)+">")
		}

		liMatch := liOpenRe.FindStringSubmatch(line)
		if liMatch != nil {
			itemCounter++
			id := ""
			if currentListID != "" {
				id = fmt.Sprintf("%s_%d", currentListID, itemCounter)
			} else {
				counter++
				id = fmt.Sprintf("page_%d_%d", pageNum, counter)
			}
			line = liOpenRe.ReplaceAllLiteralString(line,
				"<li"+withID(liMatch[1], id)+">")
		}

		if ulMatch == nil && liMatch == nil {
			line = blockOpenRe.ReplaceAllStringFunc(line, func(tag string) string {
				m := blockOpenRe.FindStringSubmatch(tag)
				counter++
				id := fmt.Sprintf("page_%d_%d", pageNum, counter)
				return "<" + m[1] + withID(m[2], id) + ">"
			})
		}

		out = append(out, line)
	}

	processed := strings.Join(out, "\n")
	if headSection != "" && bodySection != "" {
		return strings.Replace(content, bodySection, processed, 1)
	}
	return processed
}

// withID strips any existing id from an attribute string and appends
// the given one.
func withID(attrs, id string) string {
	attrs = stripIDRe.ReplaceAllString(attrs, "")
	if strings.TrimSpace(attrs) != "" {
		return fmt.Sprintf(`%s id="%s"`, attrs, id)
	}
	return fmt.Sprintf(` id="%s"`, id)
}
