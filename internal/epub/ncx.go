package epub

import (
	"archive/zip"
	"fmt"
	"path"

	"github.com/beevik/etree"
)

// writeNCX emits the legacy toc.ncx for EPUB 2 reading systems. The
// navigation document in toc.xhtml is authoritative; this mirrors it.
func (w *Writer) writeNCX(zw *zip.Writer) error {
	book := w.book

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")
	for _, m := range []struct{ name, content string }{
		{"dtb:uid", book.Meta.BookID},
		{"dtb:depth", "1"},
		{"dtb:totalPageCount", "0"},
		{"dtb:maxPageNumber", "0"},
	} {
		meta := head.CreateElement("meta")
		meta.CreateAttr("name", m.name)
		meta.CreateAttr("content", m.content)
	}

	docTitle := ncx.CreateElement("docTitle")
	docTitle.CreateElement("text").SetText(book.Meta.Title)

	// Navpoint ids come from a running counter, not the entry's play
	// order, so duplicate play orders cannot collide.
	navMap := ncx.CreateElement("navMap")
	for i, d := range book.Docs {
		navPoint := navMap.CreateElement("navPoint")
		navPoint.CreateAttr("id", fmt.Sprintf("navpoint-%d", i+1))
		navPoint.CreateAttr("playOrder", fmt.Sprintf("%d", d.PlayOrder))
		label := navPoint.CreateElement("navLabel")
		label.CreateElement("text").SetText(d.Title)
		content := navPoint.CreateElement("content")
		content.CreateAttr("src", path.Join(xhtmlDir, d.Filename))
	}

	doc.Indent(2)
	return writeXMLToZip(zw, path.Join(oebpsDir, "toc.ncx"), doc)
}
