package converter

import (
	"regexp"
	"strings"
)

// The input generator wraps sentence and word spans in <z class='s'> and
// <z class='w'> markers that are not valid XHTML. All transforms in this
// package are deliberate best-effort pattern rewrites over a narrow,
// known markup subset; shapes that do not match pass through unchanged.
var (
	zOpenSRe   = regexp.MustCompile(`<z\s+class=['"]s['"]>`)
	zOpenWRe   = regexp.MustCompile(`<z\s+class=["']w["']>`)
	zCloseRe   = regexp.MustCompile(`</z>`)
	brToSpace  = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	anyTagRe   = regexp.MustCompile(`<[^>]+>`)
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// StripTags removes the inert <z> wrapper tags from a fragment and
// rewrites anchors still pointing at legacy "<bookPrefix><id>.htm" files
// to the generated "<id>.xhtml" documents. Enclosed text is untouched.
func StripTags(fragment, bookPrefix string) string {
	out := zOpenSRe.ReplaceAllString(fragment, "")
	out = zOpenWRe.ReplaceAllString(out, "")
	out = zCloseRe.ReplaceAllString(out, "")

	if bookPrefix != "" {
		hrefRe := regexp.MustCompile(`href="` + regexp.QuoteMeta(bookPrefix) + `([^"]+)\.htm"`)
		out = hrefRe.ReplaceAllString(out, `href="${1}.xhtml"`)
	}
	return out
}

// PlainText extracts the text content of a fragment: z tags are removed,
// line breaks become single spaces, all remaining tags are dropped and
// whitespace runs collapse to one space.
func PlainText(fragment string) string {
	if fragment == "" {
		return ""
	}
	text := zOpenSRe.ReplaceAllString(fragment, "")
	text = zOpenWRe.ReplaceAllString(text, "")
	text = zCloseRe.ReplaceAllString(text, "")
	text = brToSpace.ReplaceAllString(text, " ")
	text = anyTagRe.ReplaceAllString(text, "")
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
