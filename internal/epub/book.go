package epub

import (
	"dump2epub/internal/converter"
)

// Package layout inside the archive.
const (
	oebpsDir  = "OPS"
	xhtmlDir  = "xhtml"
	imagesDir = "images"
	cssDir    = "css"
	fontsDir  = "fonts"
	audioDir  = "audio"

	mimetypeContent = "application/epub+zip"

	coverName      = "cover.jpg"
	coverThumbName = "cover_thumbnail.jpg"
)

// Book is everything the writer needs to assemble one package: the
// generated documents, the resolved metadata, and where to find the
// source assets on disk.
type Book struct {
	Meta     converter.Metadata
	Docs     []converter.PageDoc
	Chapters []converter.ChapterLink

	InputDir    string // input directory holding media/, fonts/, audio/
	MainCSS     string // source stylesheet filename inside media/
	CoverSource string // declared cover source filename, may be empty
	CustomCSS   string // path of the optional override stylesheet, may be empty
}

// hasContentsEntry reports whether the visible contents page is itself
// a TOC entry (and therefore already among Docs).
func (b *Book) hasContentsEntry() bool {
	for _, d := range b.Docs {
		if d.PageID == "content" || d.PageID == "toc" {
			return true
		}
	}
	return false
}
