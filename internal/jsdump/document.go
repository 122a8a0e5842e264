package jsdump

import (
	"path"
	"sort"
)

// playOrderUnset sorts TOC entries without an explicit play order last.
const playOrderUnset = 999

// Document is the parsed content dump for one book.
type Document struct {
	Pages  map[string]Page
	TOC    []TOCEntry // source order preserved
	Styles []string

	// Top-level metadata fields as found in the dump; any of them may
	// be empty. Final metadata resolution lives in the converter.
	Title    string
	Author   string
	BookID   string
	CoverSrc string // CoverImage.media_info.src
}

// Page is one page entry: an ordered list of sentence fragments.
type Page struct {
	Sentences []Sentence `yaml:"sentences"`
}

// Sentence is a single raw markup fragment.
type Sentence struct {
	Text string `yaml:"sentence_text"`
}

// TOCEntry is one table-of-contents record.
type TOCEntry struct {
	PageID    string
	Title     string
	Href      string
	PlayOrder int
	Linear    string // "yes" when the page occupies a spine position
}

// IsLinear reports whether the entry occupies a spine position and
// receives a page number.
func (e TOCEntry) IsLinear() bool {
	return e.Linear == "yes"
}

// SortedTOC returns the TOC entries in ascending play order. Ties keep
// the source order of the dump.
func (d *Document) SortedTOC() []TOCEntry {
	entries := make([]TOCEntry, len(d.TOC))
	copy(entries, d.TOC)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PlayOrder < entries[j].PlayOrder
	})
	return entries
}

// Page returns the page record for id.
func (d *Document) Page(id string) (Page, bool) {
	p, ok := d.Pages[id]
	return p, ok
}

// CoverSourceName returns the base name of the declared cover image,
// or "" when the dump declares none.
func (d *Document) CoverSourceName() string {
	if d.CoverSrc == "" {
		return ""
	}
	return path.Base(d.CoverSrc)
}

// MainCSS returns the name of the book stylesheet: the first entry of
// the Styles array, or "" when the array is absent.
func (d *Document) MainCSS() string {
	if len(d.Styles) > 0 {
		return d.Styles[0]
	}
	return ""
}
