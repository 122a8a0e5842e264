package converter

import (
	"strings"

	"dump2epub/internal/jsdump"
)

// Metadata is the resolved book identity used for package metadata,
// anchor rewriting and output naming.
type Metadata struct {
	Title  string
	Author string
	BookID string
}

// BookPrefix is the legacy filename prefix derived from the book id.
// Empty when no book id is known, so a bare "_" never strips
// underscores out of unrelated filenames.
func (m Metadata) BookPrefix() string {
	if m.BookID == "" {
		return ""
	}
	return m.BookID + "_"
}

// ExtractMetadata resolves title, author and book id with falling
// priority: the title page's styled headings, the dump's top-level
// fields, the stem of the first stylesheet (book id only), then the
// provided defaults.
func ExtractMetadata(doc *jsdump.Document, defaults Metadata) Metadata {
	meta := Metadata{}

	if page, ok := doc.Page("tp"); ok {
		for _, sentence := range page.Sentences {
			text := sentence.Text
			if text == "" {
				continue
			}
			if meta.Title == "" && hasClass(text, "title") {
				meta.Title = PlainText(text)
			}
			if meta.Author == "" && hasClass(text, "author") {
				meta.Author = PlainText(text)
			}
		}
	}

	if meta.Title == "" {
		meta.Title = doc.Title
	}
	if meta.Author == "" {
		meta.Author = doc.Author
	}
	meta.BookID = doc.BookID
	if meta.BookID == "" {
		if css := doc.MainCSS(); css != "" {
			meta.BookID = strings.TrimSuffix(css, ".css")
		}
	}

	if meta.Title == "" {
		meta.Title = defaults.Title
	}
	if meta.Author == "" {
		meta.Author = defaults.Author
	}
	if meta.BookID == "" {
		meta.BookID = defaults.BookID
	}
	return meta
}

func hasClass(text, class string) bool {
	return strings.Contains(text, "class='"+class+"'") ||
		strings.Contains(text, `class="`+class+`"`)
}
