package epub

import (
	"archive/zip"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// writeOPF builds OPS/package.opf: metadata, manifest and spine for the
// whole package.
func (w *Writer) writeOPF(zw *zip.Writer, a *assets) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("unique-identifier", "bookid")
	pkg.CreateAttr("xml:lang", "en")

	w.opfMetadata(pkg, a)
	w.opfManifest(pkg, a)
	w.opfSpine(pkg)

	doc.Indent(2)
	return writeXMLToZip(zw, path.Join(oebpsDir, "package.opf"), doc)
}

func (w *Writer) opfMetadata(pkg *etree.Element, a *assets) {
	book := w.book
	now := w.now().UTC()

	md := pkg.CreateElement("metadata")
	md.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")

	ident := md.CreateElement("dc:identifier")
	ident.CreateAttr("id", "bookid")
	ident.SetText(book.Meta.BookID)

	md.CreateElement("dc:title").SetText(book.Meta.Title)

	creator := md.CreateElement("dc:creator")
	creator.CreateAttr("id", "author")
	creator.SetText(book.Meta.Author)
	role := md.CreateElement("meta")
	role.CreateAttr("refines", "#author")
	role.CreateAttr("property", "role")
	role.CreateAttr("scheme", "marc:relators")
	role.SetText("aut")

	md.CreateElement("dc:language").SetText("en")
	md.CreateElement("dc:date").SetText(now.Format("2006-01-02"))

	modified := md.CreateElement("meta")
	modified.CreateAttr("property", "dcterms:modified")
	modified.SetText(now.Format("2006-01-02T15:04:05Z"))

	if a.cover != "" {
		cover := md.CreateElement("meta")
		cover.CreateAttr("name", "cover")
		cover.CreateAttr("content", "cover-image")
	}

	// Accessibility and rendition declarations. The generated pages
	// carry structural navigation, page-break markers and image alt
	// text, so these apply to every package.
	for _, m := range []struct{ property, value string }{
		{"schema:accessMode", "textual"},
		{"schema:accessMode", "visual"},
		{"schema:accessModeSufficient", "textual"},
		{"schema:accessibilityFeature", "alternativeText"},
		{"schema:accessibilityFeature", "readingOrder"},
		{"schema:accessibilityFeature", "structuralNavigation"},
		{"schema:accessibilityHazard", "none"},
		{"schema:accessibilitySummary", "This publication includes markup to enable accessibility and compatibility with assistive technology."},
		{"pageBreakSource", "Printed book"},
		{"rendition:spread", "none"},
		{"rendition:flow", "scrolled-doc"},
	} {
		meta := md.CreateElement("meta")
		meta.CreateAttr("property", m.property)
		meta.SetText(m.value)
	}
}

func (w *Writer) opfManifest(pkg *etree.Element, a *assets) {
	book := w.book
	manifest := pkg.CreateElement("manifest")

	item := func(id, href, mediaType string, properties string) {
		el := manifest.CreateElement("item")
		el.CreateAttr("id", id)
		el.CreateAttr("href", href)
		el.CreateAttr("media-type", mediaType)
		if properties != "" {
			el.CreateAttr("properties", properties)
		}
	}

	item("css", path.Join(cssDir, "styles.css"), "text/css", "")
	if book.CustomCSS != "" {
		name := filepath.Base(book.CustomCSS)
		item("custom-css", path.Join(cssDir, name), "text/css", "")
	}

	item("toc", path.Join(xhtmlDir, "toc.xhtml"), "application/xhtml+xml", "nav")
	if !book.hasContentsEntry() {
		item("content", path.Join(xhtmlDir, "content.xhtml"), "application/xhtml+xml", "")
	}
	item("ncx", "toc.ncx", "application/x-dtbncx+xml", "")

	if a.cover != "" {
		data, err := os.ReadFile(filepath.Join(a.mediaDir, a.cover))
		if err != nil {
			data = nil
		}
		item("cover-image", path.Join(imagesDir, coverName), imageMediaType(coverName, data), "cover-image")
		item("thumbnail-cover-image", path.Join(imagesDir, coverThumbName), "image/jpeg", "")
	}

	for _, name := range a.images {
		item("img-"+stem(name), path.Join(imagesDir, name), imageMediaType(name, nil), "")
	}
	for _, name := range a.audio {
		item("audio-"+stem(name), path.Join(audioDir, name), "audio/mpeg", "")
	}
	for _, name := range a.fonts {
		item("font-"+stem(name), path.Join(cssDir, fontsDir, name), "font/ttf", "")
	}

	for _, d := range book.Docs {
		item(manifestID(d.PageID), path.Join(xhtmlDir, d.Filename), "application/xhtml+xml", "")
	}
}

// opfSpine lists the reading order: linear entries only, in source
// order. When the contents page is not itself a linear TOC entry, its
// itemref is slotted in after the front matter so it reads where a
// printed contents page would.
func (w *Writer) opfSpine(pkg *etree.Element) {
	book := w.book

	var order []string
	contentsLinear := false
	for _, d := range book.Docs {
		if !d.Linear {
			continue
		}
		id := manifestID(d.PageID)
		if id == "content" {
			contentsLinear = true
		}
		order = append(order, id)
	}

	if !contentsLinear {
		at := 0
		for _, id := range []string{"crt", "tp", "cvi"} {
			if idx := indexOf(order, id); idx >= 0 {
				at = idx + 1
				break
			}
		}
		inserted := make([]string, 0, len(order)+1)
		inserted = append(inserted, order[:at]...)
		inserted = append(inserted, "content")
		inserted = append(inserted, order[at:]...)
		order = inserted
	}

	spine := pkg.CreateElement("spine")
	spine.CreateAttr("toc", "ncx")
	for _, id := range order {
		spine.CreateElement("itemref").CreateAttr("idref", id)
	}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// manifestID maps a page id to its manifest item id. The contents page
// keeps the fixed id "content" so the spine insertion logic can target
// it whether the page came from the dump or was synthesized.
func manifestID(pageID string) string {
	if pageID == "content" || pageID == "toc" {
		return "content"
	}
	return pageID
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
