package converter

import "strings"

// PageType classifies a page by its identifier. The set is closed; the
// classification is decided once per page and drives epub:type, the
// section container class and front-matter file naming.
type PageType int

const (
	PageChapter PageType = iota
	PageCover
	PageTitle
	PageCopyright
	PageContents
	PageGlossary
)

// Classify determines the page type from its identifier. First match
// wins, default is a body-matter chapter.
func Classify(pageID string) PageType {
	switch {
	case pageID == "cvi" || strings.HasPrefix(pageID, "cover"):
		return PageCover
	case pageID == "tp" || strings.HasPrefix(pageID, "titlepage"):
		return PageTitle
	case pageID == "crt" || strings.HasPrefix(pageID, "copyright"):
		return PageCopyright
	case pageID == "content" || pageID == "toc":
		return PageContents
	case strings.HasPrefix(pageID, "glossary"):
		return PageGlossary
	default:
		return PageChapter
	}
}

// EpubType returns the epub:type attribute value for the page section.
func (t PageType) EpubType() string {
	switch t {
	case PageCover:
		return "frontmatter cover"
	case PageTitle:
		return "frontmatter titlepage"
	case PageCopyright:
		return "frontmatter copyright"
	case PageContents:
		return "frontmatter content"
	case PageGlossary:
		return "glossary"
	default:
		return "bodymatter chapter"
	}
}

// SectionClass returns the class of the page section container.
func (t PageType) SectionClass() string {
	if t == PageGlossary {
		return "glossary"
	}
	return "page-container"
}

// frontMatterNames maps legacy front-matter identifiers to their
// canonical output filenames.
var frontMatterNames = map[string]string{
	"cvi.xhtml": "cover.xhtml",
	"tp.xhtml":  "titlepage.xhtml",
	"crt.xhtml": "copyright.xhtml",
}

// TargetFilename derives the output document name for a TOC entry:
// the legacy book prefix is stripped from the href, .htm becomes
// .xhtml, and front-matter pages map to their canonical names. The
// contents page always lands in content.xhtml.
func TargetFilename(pageID, href, bookPrefix string) string {
	if href == "" {
		href = pageID + ".htm"
	}
	name := href
	// A degenerate "_" prefix would eat every underscore in the name.
	if bookPrefix != "" && bookPrefix != "_" {
		name = strings.ReplaceAll(name, bookPrefix, "")
	}
	if strings.HasSuffix(name, ".htm") {
		name = strings.TrimSuffix(name, ".htm") + ".xhtml"
	}
	if canonical, ok := frontMatterNames[name]; ok {
		return canonical
	}
	if Classify(pageID) == PageContents {
		return "content.xhtml"
	}
	return name
}
