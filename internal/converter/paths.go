package converter

import (
	"regexp"
	"strings"
)

// CoverOutputName is the canonical filename all cover-image references
// are normalized to inside the package.
const CoverOutputName = "cover.jpg"

// imagesDirName is the package image subfolder referenced from xhtml/.
const imagesDirName = "images"

var relImagesRe = regexp.MustCompile(`src=["']images/`)

// RewriteImagePaths points media references of a fragment at the
// package layout: "<inputDirName>/media/" becomes "../images/" and bare
// "images/" references move one level up. After the generic rewrite,
// any reference to the known cover source file is normalized to the
// canonical cover name.
func RewriteImagePaths(fragment, inputDirName, coverSourceName string) string {
	out := fragment
	if inputDirName != "" {
		mediaRe := regexp.MustCompile(regexp.QuoteMeta(inputDirName) + `/media/`)
		out = mediaRe.ReplaceAllString(out, "../"+imagesDirName+"/")
	}
	out = relImagesRe.ReplaceAllString(out, `src="../images/`)

	if coverSourceName != "" {
		out = strings.ReplaceAll(out,
			"../"+imagesDirName+"/"+coverSourceName,
			"../"+imagesDirName+"/"+CoverOutputName)
	}
	return out
}
