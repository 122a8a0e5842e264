package converter

import (
	"fmt"

	"go.uber.org/zap"

	"dump2epub/internal/jsdump"
)

// Options configures one conversion run.
type Options struct {
	InputDirName string // base name of the input directory, matched in media paths
	Defaults     Metadata
	Overrides    Metadata // non-empty fields win over extracted metadata
	HasCustomCSS bool
}

// PageDoc is one finished page document ready to be written into the
// package, together with the navigation facts the writer needs.
type PageDoc struct {
	PageID     string
	Filename   string
	Title      string
	PlayOrder  int
	Linear     bool
	PageNumber int // 0 when the page is non-linear
	Content    string
	Refs       []string // resource references, informational
}

// ChapterLink is one chapter entry of the visible contents page.
type ChapterLink struct {
	Filename  string
	PlayOrder int    // used for the #page_<n> anchor
	TitleHTML string // formatted title markup, or the plain TOC title
}

// Result is the output of a conversion run, consumed by the package
// writer.
type Result struct {
	Meta        Metadata
	CoverSource string
	MainCSS     string
	Docs        []PageDoc
	Chapters    []ChapterLink
}

// Run converts every page the TOC names, strictly in ascending play
// order. Page numbers are assigned to linear entries only, consuming
// one increment per linear entry in that order; the per-page element
// counter is threaded through the composer so identifiers never collide
// within a page. Pages are processed sequentially; both counters are
// shared mutable state.
func Run(doc *jsdump.Document, opts Options, log *zap.Logger) (*Result, error) {
	meta := ExtractMetadata(doc, opts.Defaults)
	if opts.Overrides.Title != "" {
		meta.Title = opts.Overrides.Title
	}
	if opts.Overrides.Author != "" {
		meta.Author = opts.Overrides.Author
	}
	if opts.Overrides.BookID != "" {
		meta.BookID = opts.Overrides.BookID
	}

	ctx := PageContext{
		BookTitle:    meta.Title,
		BookAuthor:   meta.Author,
		BookPrefix:   meta.BookPrefix(),
		InputDirName: opts.InputDirName,
		CoverSource:  doc.CoverSourceName(),
		HasCustomCSS: opts.HasCustomCSS,
	}

	result := &Result{
		Meta:        meta,
		CoverSource: ctx.CoverSource,
		MainCSS:     doc.MainCSS(),
	}

	pageNumber := 1
	for _, entry := range doc.SortedTOC() {
		page, ok := doc.Page(entry.PageID)
		if !ok {
			log.Warn("TOC entry has no page data, skipping",
				zap.String("page", entry.PageID))
			continue
		}

		current := 0
		if entry.IsLinear() {
			current = pageNumber
		}

		content := ComposePage(entry.PageID, page, entry, current, ctx)

		refs, err := CollectRefs(content)
		if err != nil {
			log.Warn("unable to collect resource references",
				zap.String("page", entry.PageID), zap.Error(err))
		}

		filename := TargetFilename(entry.PageID, entry.Href, ctx.BookPrefix)
		result.Docs = append(result.Docs, PageDoc{
			PageID:     entry.PageID,
			Filename:   filename,
			Title:      entry.Title,
			PlayOrder:  entry.PlayOrder,
			Linear:     entry.IsLinear(),
			PageNumber: current,
			Content:    content,
			Refs:       refs,
		})

		if IsChapterID(entry.PageID) {
			titleHTML := ChapterTitleHTML(doc, entry.PageID)
			if titleHTML == "" {
				titleHTML = entry.Title
			}
			result.Chapters = append(result.Chapters, ChapterLink{
				Filename:  filename,
				PlayOrder: entry.PlayOrder,
				TitleHTML: titleHTML,
			})
		}

		if entry.IsLinear() {
			pageNumber++
		}
	}

	if len(result.Docs) == 0 {
		return nil, fmt.Errorf("no pages generated: TOC names no page with content")
	}

	return result, nil
}
