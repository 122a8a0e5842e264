package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Writer assembles one EPUB 3 package from a converted book.
type Writer struct {
	book *Book
	log  *zap.Logger
	now  func() time.Time
}

// NewWriter creates a package writer for book.
func NewWriter(book *Book, log *zap.Logger) *Writer {
	return &Writer{book: book, log: log, now: time.Now}
}

// BaseName returns the package base name: slugified title plus book id.
func (w *Writer) BaseName() string {
	return slug.Make(w.book.Meta.Title) + "_" + w.book.Meta.BookID
}

// Write assembles the package under outputRoot and returns the path of
// the finished .epub file.
func (w *Writer) Write(outputRoot string) (string, error) {
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}

	epubPath := filepath.Join(outputRoot, w.BaseName()+".epub")
	f, err := os.Create(epubPath)
	if err != nil {
		return "", fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()

	if err := w.WriteTo(f); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("unable to finalize output file: %w", err)
	}
	return epubPath, nil
}

// WriteTo streams the complete package into out. The mimetype entry is
// written first and stored uncompressed, as the container format
// requires.
func (w *Writer) WriteTo(out io.Writer) error {
	zw := zip.NewWriter(out)

	if err := writeMimetype(zw); err != nil {
		return fmt.Errorf("unable to write mimetype: %w", err)
	}
	if err := writeContainer(zw); err != nil {
		return fmt.Errorf("unable to write container: %w", err)
	}

	for _, doc := range w.book.Docs {
		name := path.Join(oebpsDir, xhtmlDir, doc.Filename)
		if err := writeDataToZip(zw, name, []byte(doc.Content)); err != nil {
			return fmt.Errorf("unable to write page %s: %w", doc.PageID, err)
		}
		w.log.Debug("generated page",
			zap.String("file", doc.Filename),
			zap.Int("page_number", doc.PageNumber),
			zap.Strings("refs", doc.Refs))
	}

	if err := w.writeNav(zw); err != nil {
		return fmt.Errorf("unable to write navigation document: %w", err)
	}
	if err := w.writeContentsPage(zw); err != nil {
		return fmt.Errorf("unable to write contents page: %w", err)
	}
	if err := w.writeNCX(zw); err != nil {
		return fmt.Errorf("unable to write NCX: %w", err)
	}

	assets := collectAssets(w.book, w.log)
	if err := w.writeAssets(zw, assets); err != nil {
		return fmt.Errorf("unable to write assets: %w", err)
	}
	if err := w.writeOPF(zw, assets); err != nil {
		return fmt.Errorf("unable to write OPF: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	return nil
}

func (w *Writer) writeAssets(zw *zip.Writer, a *assets) error {
	for _, name := range a.images {
		data, err := os.ReadFile(filepath.Join(a.mediaDir, name))
		if err != nil {
			return fmt.Errorf("unable to read image %s: %w", name, err)
		}
		if err := writeDataToZip(zw, path.Join(oebpsDir, imagesDir, name), data); err != nil {
			return err
		}
	}

	if a.cover != "" {
		data, err := os.ReadFile(filepath.Join(a.mediaDir, a.cover))
		if err != nil {
			return fmt.Errorf("unable to read cover source %s: %w", a.cover, err)
		}
		if err := writeDataToZip(zw, path.Join(oebpsDir, imagesDir, coverName), data); err != nil {
			return err
		}
		thumb := coverThumbnail(data, w.log)
		if err := writeDataToZip(zw, path.Join(oebpsDir, imagesDir, coverThumbName), thumb); err != nil {
			return err
		}
		w.log.Info("cover image selected", zap.String("source", a.cover))
	}

	if a.cssData != nil {
		if err := writeDataToZip(zw, path.Join(oebpsDir, cssDir, "styles.css"), a.cssData); err != nil {
			return err
		}
	}
	if w.book.CustomCSS != "" {
		data, err := os.ReadFile(w.book.CustomCSS)
		if err != nil {
			return fmt.Errorf("unable to read custom stylesheet: %w", err)
		}
		name := path.Join(oebpsDir, cssDir, filepath.Base(w.book.CustomCSS))
		if err := writeDataToZip(zw, name, data); err != nil {
			return err
		}
	}

	// Fonts sit next to the CSS so src:url(fonts/...) references keep
	// working without rewriting the stylesheet.
	for _, name := range a.fonts {
		data, err := os.ReadFile(filepath.Join(a.fontDir, name))
		if err != nil {
			return fmt.Errorf("unable to read font %s: %w", name, err)
		}
		if err := writeDataToZip(zw, path.Join(oebpsDir, cssDir, fontsDir, name), data); err != nil {
			return err
		}
	}

	for _, name := range a.audio {
		data, err := os.ReadFile(filepath.Join(a.audioDir, name))
		if err != nil {
			return fmt.Errorf("unable to read audio %s: %w", name, err)
		}
		if err := writeDataToZip(zw, path.Join(oebpsDir, audioDir, name), data); err != nil {
			return err
		}
	}

	return nil
}

func writeMimetype(zw *zip.Writer) error {
	f, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(f, mimetypeContent)
	return err
}

func writeContainer(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")

	rootfiles := container.CreateElement("rootfiles")
	rootfile := rootfiles.CreateElement("rootfile")
	rootfile.CreateAttr("full-path", path.Join(oebpsDir, "package.opf"))
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")

	return writeXMLToZip(zw, "META-INF/container.xml", doc)
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}
