package converter

import (
	"regexp"
	"strings"
)

var (
	brTagRe = regexp.MustCompile(`<br(\s[^>]*?)?\s*/?>`)
	hrTagRe = regexp.MustCompile(`<hr(\s[^>]*?)?\s*/?>`)
)

// HideBreaksFromReaders injects aria-hidden="true" into every <br> and
// <hr> that does not already carry it, normalizing the element to
// self-closing form. Elements already marked are left untouched.
func HideBreaksFromReaders(fragment string) string {
	if fragment == "" {
		return fragment
	}
	out := brTagRe.ReplaceAllStringFunc(fragment, func(tag string) string {
		return hideVoidElement(tag, "br", brTagRe)
	})
	out = hrTagRe.ReplaceAllStringFunc(out, func(tag string) string {
		return hideVoidElement(tag, "hr", hrTagRe)
	})
	return out
}

func hideVoidElement(fullTag, name string, re *regexp.Regexp) string {
	attrs := ""
	if m := re.FindStringSubmatch(fullTag); m != nil {
		attrs = m[1]
	}
	if strings.Contains(attrs, "aria-hidden") {
		return fullTag
	}
	if strings.TrimSpace(attrs) != "" {
		return "<" + name + attrs + ` aria-hidden="true" />`
	}
	return "<" + name + ` aria-hidden="true" />`
}
