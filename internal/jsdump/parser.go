package jsdump

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// The dump is a JS object literal:
//
//	var content = { Styles: ['x.css'], Pages: { tp: {...}, }, ... };
//
// with unquoted keys, single-quoted strings and trailing commas. After
// stripping the assignment wrapper and trailing commas, the remainder is
// a valid YAML flow mapping (YAML accepts unquoted keys and
// single-quoted scalars), so it is parsed with go-yaml rather than a
// hand-written tokenizer.
var (
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

	ErrEmptyDump = errors.New("content dump is empty")
)

// rawDocument mirrors the dump's top-level shape. Toc is decoded as a
// MapSlice so the source order of entries survives for stable play-order
// tie-breaking.
type rawDocument struct {
	Pages      map[string]Page `yaml:"Pages"`
	Toc        yaml.MapSlice   `yaml:"Toc"`
	Styles     []string        `yaml:"Styles"`
	BookTitle  string          `yaml:"BookTitle"`
	Title      string          `yaml:"Title"`
	BookAuthor string          `yaml:"BookAuthor"`
	Author     string          `yaml:"Author"`
	BookId     string          `yaml:"BookId"`
	BookID     string          `yaml:"BookID"`
	ISBN       string          `yaml:"ISBN"`
	CoverImage struct {
		MediaInfo struct {
			Src string `yaml:"src"`
		} `yaml:"media_info"`
	} `yaml:"CoverImage"`
}

// Load reads and parses the JS content dump at path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read content dump: %w", err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse parses the raw bytes of a JS content dump.
func Parse(raw []byte) (*Document, error) {
	text := normalize(string(raw))
	if text == "" {
		return nil, ErrEmptyDump
	}

	var rd rawDocument
	if err := yaml.Unmarshal([]byte(text), &rd); err != nil {
		return nil, fmt.Errorf("unable to decode content object: %w", err)
	}

	doc := &Document{
		Pages:    rd.Pages,
		Styles:   rd.Styles,
		Title:    firstNonEmpty(rd.BookTitle, rd.Title),
		Author:   firstNonEmpty(rd.BookAuthor, rd.Author),
		BookID:   firstNonEmpty(rd.BookId, rd.BookID, rd.ISBN),
		CoverSrc: rd.CoverImage.MediaInfo.Src,
	}
	if doc.Pages == nil {
		doc.Pages = map[string]Page{}
	}

	for _, item := range rd.Toc {
		id, ok := item.Key.(string)
		if !ok {
			continue
		}
		doc.TOC = append(doc.TOC, tocEntry(id, item.Value))
	}

	return doc, nil
}

// normalize strips the "var content = ...;" wrapper and trailing commas,
// leaving a YAML flow mapping.
func normalize(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "var ") {
		if idx := strings.Index(trimmed, "{"); idx >= 0 {
			trimmed = trimmed[idx:]
		}
	}
	trimmed = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(trimmed), ";"))
	return trailingCommaRe.ReplaceAllString(trimmed, "$1")
}

func tocEntry(id string, v any) TOCEntry {
	entry := TOCEntry{PageID: id, PlayOrder: playOrderUnset}
	fields, ok := asMapping(v)
	if !ok {
		return entry
	}
	if s, ok := asString(fields["title"]); ok {
		entry.Title = s
	}
	if s, ok := asString(fields["href"]); ok {
		entry.Href = s
	}
	if n, ok := asInt(fields["playOrder"]); ok {
		entry.PlayOrder = n
	}
	if s, ok := asString(fields["linear"]); ok {
		entry.Linear = s
	}
	return entry
}

func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case yaml.MapSlice:
		out := make(map[string]any, len(m))
		for _, item := range m {
			if k, ok := item.Key.(string); ok {
				out[k] = item.Value
			}
		}
		return out, true
	}
	return nil, false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		// YAML may resolve bare yes/no; map back to the dump's strings.
		if s {
			return "yes", true
		}
		return "no", true
	}
	return "", false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
