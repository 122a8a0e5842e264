package converter

import (
	"regexp"
	"strings"

	"dump2epub/internal/jsdump"
)

var (
	chapterIDRe      = regexp.MustCompile(`^c\d+$`)
	chapterHeadingRe = regexp.MustCompile(`(?si)<h1[^>]*class=["']chapter["'][^>]*>(.*?)</h1>`)
	headingPrefixRe  = regexp.MustCompile(`(?si)^.*?<br\s*/?\s*>`)
	smallClassRe     = regexp.MustCompile(`\bclass=["']small["']`)
)

// IsChapterID reports whether a page identifier names a numbered
// chapter (c1, c02, ...).
func IsChapterID(pageID string) bool {
	return chapterIDRe.MatchString(pageID)
}

// ChapterTitleHTML returns the formatted title markup for a chapter's
// entry on the visible contents page, taken from the chapter's leading
// h1.chapter heading: z tags removed, the "CHAPTER n" prefix up to the
// first line break dropped, and the small style renamed to the variant
// the contents page uses. Returns "" when the page has no recognizable
// chapter heading; the caller falls back to the plain TOC title.
func ChapterTitleHTML(doc *jsdump.Document, pageID string) string {
	page, ok := doc.Page(pageID)
	if !ok || len(page.Sentences) == 0 {
		return ""
	}
	first := page.Sentences[0].Text
	if first == "" || !hasClass(first, "chapter") {
		return ""
	}
	m := chapterHeadingRe.FindStringSubmatch(first)
	if m == nil {
		return ""
	}

	inner := zOpenSRe.ReplaceAllString(m[1], "")
	inner = zOpenWRe.ReplaceAllString(inner, "")
	inner = zCloseRe.ReplaceAllString(inner, "")
	inner = headingPrefixRe.ReplaceAllString(inner, "")
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return ""
	}
	inner = smallClassRe.ReplaceAllString(inner, `class="small1"`)
	return HideBreaksFromReaders(inner)
}
