package epub

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"

	"github.com/beevik/etree"
)

// writeNav emits the EPUB 3 navigation document. One entry per
// generated page, in reading order, pointing at the page's top anchor.
func (w *Writer) writeNav(zw *zip.Writer) error {
	book := w.book

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")
	html.CreateAttr("lang", "en")
	html.CreateAttr("xml:lang", "en")

	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(book.Meta.Title)
	link := head.CreateElement("link")
	link.CreateAttr("rel", "stylesheet")
	link.CreateAttr("type", "text/css")
	link.CreateAttr("href", "../css/styles.css")

	body := html.CreateElement("body")
	section := body.CreateElement("section")
	section.CreateAttr("id", "page_toc")
	section.CreateAttr("epub:type", "frontmatter toc")

	nav := section.CreateElement("nav")
	nav.CreateAttr("id", "toc")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateAttr("role", "doc-toc")
	nav.CreateAttr("aria-labelledby", "toc_title")

	h1 := nav.CreateElement("h1")
	h1.CreateAttr("id", "toc_title")
	h1.SetText("Table of Contents")

	ol := nav.CreateElement("ol")
	ol.CreateAttr("id", "toc_list")
	for i, d := range book.Docs {
		li := ol.CreateElement("li")
		li.CreateAttr("id", fmt.Sprintf("toc_list_%d", i+1))
		a := li.CreateElement("a")
		a.CreateAttr("href", fmt.Sprintf("%s#page_%d", d.Filename, d.PlayOrder))
		a.SetText(d.Title)
	}

	doc.Indent(2)
	return writeXMLToZip(zw, path.Join(oebpsDir, xhtmlDir, "toc.xhtml"), doc)
}

// writeContentsPage synthesizes the visible contents page when the dump
// did not ship one. Chapter titles can carry inline markup, so this one
// is assembled as text rather than through the XML builder.
func (w *Writer) writeContentsPage(zw *zip.Writer) error {
	book := w.book
	if book.hasContentsEntry() {
		return nil
	}

	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='utf-8'?>\n")
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops" lang="en" xml:lang="en">` + "\n")
	b.WriteString("<head>\n")
	b.WriteString("    <meta charset=\"utf-8\" />\n")
	b.WriteString("    <title>" + book.Meta.Title + "</title>\n")
	b.WriteString("    <link rel=\"stylesheet\" type=\"text/css\" href=\"../css/styles.css\" />\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("    <main>\n")
	b.WriteString("        <section id=\"page_4\" epub:type=\"frontmatter toc\" class=\"frontmatter\">\n")
	b.WriteString("            <span epub:type=\"pagebreak\" role=\"doc-pagebreak\" id=\"pagebreak_4\"><span class=\"sr-only\">Page 4</span></span>\n")
	b.WriteString("            <nav id=\"page_4_1\" epub:type=\"toc\" role=\"doc-toc\" aria-labelledby=\"page_4_2\">\n")
	b.WriteString("                <h1 id=\"page_4_2\" class='chapter'>CONTENTS</h1>\n")
	b.WriteString("                <ol id=\"page_4_3\" class='toc-list'>\n")
	for i, ch := range book.Chapters {
		b.WriteString(fmt.Sprintf("                    <li id=\"page_4_3_%d\" class='toc'><a class=\"hlink\" href=\"%s#page_%d\">%s</a></li>\n",
			i+1, ch.Filename, ch.PlayOrder, ch.TitleHTML))
	}
	b.WriteString("                </ol>\n")
	b.WriteString("            </nav>\n")
	b.WriteString("        </section>\n")
	b.WriteString("    </main>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")

	return writeDataToZip(zw, path.Join(oebpsDir, xhtmlDir, "content.xhtml"), []byte(b.String()))
}
