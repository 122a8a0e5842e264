package converter

import (
	"fmt"
	"regexp"
	"strings"
)

// blockElements is the fixed allow-list of element kinds that receive
// generated identifiers.
var blockElements = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "div": true, "section": true, "article": true, "nav": true,
	"header": true, "footer": true, "aside": true, "main": true, "ul": true,
	"ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"blockquote": true, "figure": true, "figcaption": true, "table": true,
	"thead": true, "tbody": true, "tfoot": true, "tr": true,
}

// Only opening tags at the start of the fragment or preceded by
// whitespace are candidates; inline occurrences inside running text are
// skipped so nested content is never double-tagged.
var topLevelTagRe = regexp.MustCompile(`(?m)(^|\s+)<(\w+)((?:\s+[^>]*?)?)(/?)>`)

var existingIDRe = regexp.MustCompile(`(?i)\bid\s*=\s*["']([^"']+)["']`)

// AssignIDs walks a fragment once and gives every allow-listed block
// element without an identifier the next "page_<page>_<n>" id.
// Pre-existing identifiers are preserved and consume no counter value.
// The updated counter is returned; threading it across all fragments of
// one page is the caller's responsibility.
func AssignIDs(fragment string, pageNumber, counter int) (string, int) {
	if strings.TrimSpace(fragment) == "" {
		return fragment, counter
	}

	var b strings.Builder
	last := 0
	for _, loc := range topLevelTagRe.FindAllStringSubmatchIndex(fragment, -1) {
		full := fragment[loc[0]:loc[1]]
		prefix := fragment[loc[2]:loc[3]]
		tag := fragment[loc[4]:loc[5]]
		attrs := fragment[loc[6]:loc[7]]
		selfClosing := fragment[loc[8]:loc[9]]

		b.WriteString(fragment[last:loc[0]])
		last = loc[1]

		if !blockElements[strings.ToLower(tag)] || existingIDRe.MatchString(attrs) {
			b.WriteString(full)
			continue
		}

		counter++
		id := fmt.Sprintf("page_%d_%d", pageNumber, counter)
		if strings.TrimSpace(attrs) != "" {
			b.WriteString(fmt.Sprintf(`%s<%s%s id="%s"%s>`, prefix, tag, attrs, id, selfClosing))
		} else {
			b.WriteString(fmt.Sprintf(`%s<%s id="%s"%s>`, prefix, tag, id, selfClosing))
		}
	}
	b.WriteString(fragment[last:])

	return b.String(), counter
}
