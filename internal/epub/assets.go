package epub

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// assets is the on-disk material gathered for one package: image names
// in manifest order, the chosen cover, fonts, audio and stylesheets.
// Collection is best-effort; anything missing is logged and skipped.
type assets struct {
	mediaDir string
	images   []string // image filenames to copy, cover source excluded
	cover    string   // chosen cover source filename, "" when none
	fontDir  string
	fonts    []string
	audioDir string
	audio    []string
	cssData  []byte
}

func collectAssets(book *Book, log *zap.Logger) *assets {
	a := &assets{mediaDir: filepath.Join(book.InputDir, "media")}

	var all []string
	entries, err := os.ReadDir(a.mediaDir)
	if err != nil {
		log.Warn("unable to read media directory", zap.Error(err))
	}
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		all = append(all, e.Name())
	}
	sort.Sort(natural.StringSlice(all))

	a.cover = discoverCover(book.CoverSource, all)
	if a.cover == "" {
		log.Warn("could not determine a cover image source, package will have no cover")
	}
	for _, name := range all {
		// The declared cover source is not copied under its own name;
		// content references to it were normalized to cover.jpg.
		if book.CoverSource != "" && name == book.CoverSource {
			continue
		}
		a.images = append(a.images, name)
	}

	a.fontDir = fontSourceDir(book.InputDir)
	if a.fontDir != "" {
		a.fonts = globNames(a.fontDir, ".ttf")
	}

	a.audioDir = filepath.Join(book.InputDir, "audio")
	a.audio = globNames(a.audioDir, ".mp3")

	if book.MainCSS != "" {
		data, err := os.ReadFile(filepath.Join(a.mediaDir, book.MainCSS))
		if err != nil {
			log.Warn("book stylesheet not found in media directory",
				zap.String("css", book.MainCSS), zap.Error(err))
		} else {
			header := fmt.Sprintf("/* Source CSS: %s | Book ID: %s */\n", book.MainCSS, book.Meta.BookID)
			a.cssData = append([]byte(header), data...)
		}
	}

	return a
}

// fontSourceDir picks the font directory: next to the content dump
// first, then ./fonts, then the legacy media/fonts location.
func fontSourceDir(inputDir string) string {
	for _, dir := range []string{
		filepath.Join(inputDir, fontsDir),
		fontsDir,
		filepath.Join(inputDir, "media", fontsDir),
	} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

func globNames(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(natural.StringSlice(names))
	return names
}
