package epub

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// imageMediaTypes maps image extensions to their media types; the
// fallback mirrors the input generator, which only ever emits JPEG.
var imageMediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// imageMediaType determines the manifest media type of an image,
// sniffing the content first and falling back to the extension.
func imageMediaType(name string, data []byte) string {
	if len(data) > 0 {
		if kind, err := filetype.Match(data); err == nil &&
			strings.HasPrefix(kind.MIME.Value, "image/") {
			return kind.MIME.Value
		}
	}
	if mt, ok := imageMediaTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	return "image/jpeg"
}

// isImageFile reports whether a media-directory entry is an image asset
// that belongs in the package.
func isImageFile(name string) bool {
	_, ok := imageMediaTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}
