package converter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CollectRefs parses a generated document and returns the resource
// references it contains: image sources, audio sources and stylesheet
// links. The list is informational; downstream packaging is
// responsible for making sure the referenced assets exist.
func CollectRefs(document string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, err
	}

	var refs []string
	seen := map[string]bool{}
	add := func(ref string) {
		if ref == "" || seen[ref] {
			return
		}
		seen[ref] = true
		refs = append(refs, ref)
	}

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(src)
	})
	doc.Find("audio[src], audio source[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(src)
	})
	doc.Find("link[rel='stylesheet']").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(href)
	})

	return refs, nil
}
