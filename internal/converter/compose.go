package converter

import (
	"fmt"
	"regexp"
	"strings"

	"dump2epub/internal/jsdump"
)

// MainCSSName is the fixed stylesheet name inside the package.
const MainCSSName = "styles.css"

// CustomCSSName is the optional project-override stylesheet name.
const CustomCSSName = "custom.css"

// PageContext carries the per-run values the composer needs for every
// page.
type PageContext struct {
	BookTitle    string
	BookAuthor   string
	BookPrefix   string // legacy filename prefix stripped from anchors
	InputDirName string // matched when rewriting media references
	CoverSource  string // declared cover source filename, may be empty
	HasCustomCSS bool
}

var (
	imgAltRe     = regexp.MustCompile(`alt=["']([^"']*)["']`)
	imgCloseRe   = regexp.MustCompile(`(<img[^>]*?)(\s*/?>)`)
	h1TagRe      = regexp.MustCompile(`(?s)<h1([^>]*)>(.*?)</h1>`)
	authorAttrRe = regexp.MustCompile(`class=["']author["']`)
)

// ComposePage runs the full transform pipeline over one page and wraps
// the result in its structural shell. pageNumber is 0 for non-linear
// pages, which then receive no page-break marker and no generated
// element identifiers.
func ComposePage(pageID string, page jsdump.Page, entry jsdump.TOCEntry, pageNumber int, ctx PageContext) string {
	pageType := Classify(pageID)

	title := entry.Title
	if title == "" {
		title = pageID
	}

	sectionID := "page_" + pageID
	if pageNumber > 0 {
		sectionID = fmt.Sprintf("page_%d", pageNumber)
	}

	parts := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<!DOCTYPE html>`,
		`<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops" lang="en">`,
		``,
		`<head>`,
		`    <meta charset="utf-8" />`,
		`    <meta name="viewport" content="width=device-width, initial-scale=1.0"/>`,
		fmt.Sprintf(`    <title>%s</title>`, title),
		fmt.Sprintf(`    <link rel="stylesheet" type="text/css" href="../css/%s" />`, MainCSSName),
	}
	if ctx.HasCustomCSS {
		parts = append(parts,
			fmt.Sprintf(`    <link rel="stylesheet" type="text/css" href="../css/%s" />`, CustomCSSName))
	}
	parts = append(parts,
		`</head>`,
		``,
		`<body>`,
		`    <main role="main">`,
		fmt.Sprintf(`        <section id="%s" epub:type="%s" class="%s">`,
			sectionID, pageType.EpubType(), pageType.SectionClass()),
	)

	// The pagebreak marker consumes the first counter slot so element
	// ids start at page_<n>_2 on numbered pages with a leading marker.
	counter := 0
	if pageNumber > 0 {
		counter++
		label := fmt.Sprintf("Page %d", pageNumber)
		if pageType == PageCover {
			label = "Cover Page"
		}
		parts = append(parts, fmt.Sprintf(
			`            <span epub:type="pagebreak" role="doc-pagebreak" id="pagebreak_%d"><span class="sr-only">%s</span></span>`,
			pageNumber, label))
	}

	if pageType == PageCover {
		counter++
		coverPage := pageNumber
		if coverPage <= 0 {
			coverPage = 1
		}
		parts = append(parts, fmt.Sprintf(
			`            <h1 id="page_%d_%d" class="visually-hidden">Book cover of "%s" by %s</h1>`,
			coverPage, counter, ctx.BookTitle, ctx.BookAuthor))
	}

	for _, sentence := range page.Sentences {
		text := sentence.Text
		if text == "" {
			continue
		}
		text = StripTags(text, ctx.BookPrefix)
		text = RewriteImagePaths(text, ctx.InputDirName, ctx.CoverSource)
		text = HideBreaksFromReaders(text)

		if pageType == PageCover && strings.Contains(text, "<img") {
			text = describeCoverImage(text, ctx.BookTitle, ctx.BookAuthor)
		}
		if pageNumber > 0 {
			text, counter = AssignIDs(text, pageNumber, counter)
		}
		parts = append(parts, "            "+text)
	}

	if pageType == PageCopyright {
		parts = strings.Split(RestructureCopyright(strings.Join(parts, "\n"), pageNumber), "\n")
	}

	// The title page keeps exactly one top-level heading: the author
	// heading is demoted to a paragraph.
	if pageType == PageTitle {
		parts = strings.Split(demoteAuthorHeading(strings.Join(parts, "\n")), "\n")
	}

	parts = append(parts,
		`        </section>`,
		`    </main>`,
		`</body>`,
		``,
		`</html>`,
	)

	return strings.Join(parts, "\n")
}

// describeCoverImage forces a screen-reader caption onto the cover
// image, replacing any existing alt text. The quotes around the title
// are entity-escaped so the attribute stays well-formed.
func describeCoverImage(text, bookTitle, bookAuthor string) string {
	alt := fmt.Sprintf("Book cover of &quot;%s&quot; by %s", bookTitle, bookAuthor)
	if strings.Contains(text, "alt=") {
		return imgAltRe.ReplaceAllStringFunc(text, func(string) string {
			return `alt="` + alt + `"`
		})
	}
	return imgCloseRe.ReplaceAllStringFunc(text, func(tag string) string {
		m := imgCloseRe.FindStringSubmatch(tag)
		return m[1] + ` alt="` + alt + `"` + m[2]
	})
}

func demoteAuthorHeading(content string) string {
	return h1TagRe.ReplaceAllStringFunc(content, func(tag string) string {
		m := h1TagRe.FindStringSubmatch(tag)
		if !authorAttrRe.MatchString(m[1]) {
			return tag
		}
		return "<p" + m[1] + ">" + m[2] + "</p>"
	})
}
