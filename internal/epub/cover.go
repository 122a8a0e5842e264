package epub

import (
	"bytes"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// discoverCover picks the source file for the canonical cover image
// using ordered heuristics: the declared cover source, then any image
// whose name looks like a cover, then the title-page scan, then the
// first JPEG. imageNames must already be in package order. Returns ""
// when nothing qualifies; the run continues without a cover.
func discoverCover(declared string, imageNames []string) string {
	if declared != "" {
		for _, name := range imageNames {
			if name == declared {
				return name
			}
		}
	}
	for _, name := range imageNames {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "cvr") || strings.Contains(lower, "cover") {
			return name
		}
	}
	for _, name := range imageNames {
		if strings.ToLower(name) == "tp.jpg" {
			return name
		}
	}
	for _, name := range imageNames {
		if strings.HasSuffix(strings.ToLower(name), ".jpg") {
			return name
		}
	}
	return ""
}

// thumbHeight bounds the generated cover thumbnail.
const thumbHeight = 320

// coverThumbnail renders a height-bound JPEG thumbnail of the cover.
// When the source cannot be decoded the original bytes are reused.
func coverThumbnail(cover []byte, log *zap.Logger) []byte {
	img, err := imaging.Decode(bytes.NewReader(cover))
	if err != nil {
		log.Warn("unable to decode cover image, copying it as thumbnail", zap.Error(err))
		return cover
	}
	thumb := imaging.Resize(img, 0, thumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		log.Warn("unable to encode cover thumbnail, copying source", zap.Error(err))
		return cover
	}
	return buf.Bytes()
}
