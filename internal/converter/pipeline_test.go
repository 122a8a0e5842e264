package converter

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"dump2epub/internal/jsdump"
)

func pipelineDoc() *jsdump.Document {
	return &jsdump.Document{
		BookID:   "9780134093413",
		CoverSrc: "mybook/media/9780134093413.jpg",
		Styles:   []string{"9780134093413.css"},
		Pages: map[string]jsdump.Page{
			"cvi": {Sentences: []jsdump.Sentence{
				{Text: `<img src="mybook/media/9780134093413.jpg"/>`},
			}},
			"tp": {Sentences: []jsdump.Sentence{
				{Text: `<h1 class="title"><z class='s'>The Go Workbook</z></h1>`},
				{Text: `<h1 class="author"><z class='s'>Pat Writer</z></h1>`},
			}},
			"c01": {Sentences: []jsdump.Sentence{
				{Text: `<h1 class="chapter"><z class='s'>CHAPTER 1<br/>Getting Started</z></h1>`},
				{Text: `<p class="indent"><z class='s'>First chapter body.</z></p>`},
			}},
			"bm01": {Sentences: []jsdump.Sentence{
				{Text: `<p>back matter</p>`},
			}},
		},
		TOC: []jsdump.TOCEntry{
			{PageID: "c01", Title: "Chapter 1", Href: "9780134093413_c01.htm", PlayOrder: 3, Linear: "yes"},
			{PageID: "cvi", Title: "Cover", Href: "9780134093413_cvi.htm", PlayOrder: 1, Linear: "yes"},
			{PageID: "tp", Title: "Title Page", Href: "9780134093413_tp.htm", PlayOrder: 2, Linear: "yes"},
			{PageID: "bm01", Title: "Notes", Href: "9780134093413_bm01.htm", PlayOrder: 4, Linear: "no"},
			{PageID: "ghost", Title: "Missing", Href: "", PlayOrder: 5, Linear: "yes"},
		},
	}
}

func TestRun_OrderAndNumbering(t *testing.T) {
	result, err := Run(pipelineDoc(), Options{InputDirName: "mybook"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	ids := make([]string, 0, len(result.Docs))
	for _, d := range result.Docs {
		ids = append(ids, d.PageID)
	}
	wantOrder := []string{"cvi", "tp", "c01", "bm01"}
	if strings.Join(ids, ",") != strings.Join(wantOrder, ",") {
		t.Fatalf("doc order = %v, want %v", ids, wantOrder)
	}

	wantNumbers := map[string]int{"cvi": 1, "tp": 2, "c01": 3, "bm01": 0}
	for _, d := range result.Docs {
		if d.PageNumber != wantNumbers[d.PageID] {
			t.Errorf("page %s number = %d, want %d", d.PageID, d.PageNumber, wantNumbers[d.PageID])
		}
	}
}

func TestRun_Filenames(t *testing.T) {
	result, err := Run(pipelineDoc(), Options{InputDirName: "mybook"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[string]string{
		"cvi":  "cover.xhtml",
		"tp":   "titlepage.xhtml",
		"c01":  "c01.xhtml",
		"bm01": "bm01.xhtml",
	}
	for _, d := range result.Docs {
		if d.Filename != want[d.PageID] {
			t.Errorf("page %s filename = %q, want %q", d.PageID, d.Filename, want[d.PageID])
		}
	}
}

func TestRun_MetadataAndChapters(t *testing.T) {
	result, err := Run(pipelineDoc(), Options{InputDirName: "mybook"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Meta.Title != "The Go Workbook" || result.Meta.Author != "Pat Writer" {
		t.Fatalf("meta = %+v", result.Meta)
	}
	if result.CoverSource != "9780134093413.jpg" {
		t.Fatalf("CoverSource = %q", result.CoverSource)
	}
	if result.MainCSS != "9780134093413.css" {
		t.Fatalf("MainCSS = %q", result.MainCSS)
	}

	if len(result.Chapters) != 1 {
		t.Fatalf("chapters = %+v", result.Chapters)
	}
	ch := result.Chapters[0]
	if ch.Filename != "c01.xhtml" || ch.PlayOrder != 3 {
		t.Fatalf("chapter link = %+v", ch)
	}
	if ch.TitleHTML != "Getting Started" {
		t.Fatalf("chapter title = %q", ch.TitleHTML)
	}
}

func TestRun_Overrides(t *testing.T) {
	result, err := Run(pipelineDoc(), Options{
		InputDirName: "mybook",
		Overrides:    Metadata{Title: "Renamed", Author: "Someone Else", BookID: "custom-id"},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Meta.Title != "Renamed" || result.Meta.Author != "Someone Else" || result.Meta.BookID != "custom-id" {
		t.Fatalf("meta = %+v", result.Meta)
	}
}

func TestRun_CoverReferencesNormalized(t *testing.T) {
	result, err := Run(pipelineDoc(), Options{InputDirName: "mybook"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, d := range result.Docs {
		if d.PageID != "cvi" {
			continue
		}
		if !strings.Contains(d.Content, `src="../images/cover.jpg"`) {
			t.Fatalf("cover reference not normalized:\n%s", d.Content)
		}
		for _, ref := range d.Refs {
			if ref == "../images/cover.jpg" {
				return
			}
		}
		t.Fatalf("cover ref missing from %v", d.Refs)
	}
	t.Fatal("cover page not generated")
}

func TestRun_MetadataFreeDumpUsesDefaults(t *testing.T) {
	doc := &jsdump.Document{
		Pages: map[string]jsdump.Page{
			"n1": {Sentences: []jsdump.Sentence{{Text: `<p>notes</p>`}}},
		},
		TOC: []jsdump.TOCEntry{
			{PageID: "n1", Title: "Notes", Href: "my_notes_n1.htm", PlayOrder: 1, Linear: "yes"},
		},
	}
	defaults := Metadata{Title: "Book Title", Author: "Book Author", BookID: "Book_Id"}

	result, err := Run(doc, Options{InputDirName: "mybook", Defaults: defaults}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Meta != defaults {
		t.Fatalf("meta = %+v, want defaults", result.Meta)
	}
	if got := result.Docs[0].Filename; got != "my_notes_n1.xhtml" {
		t.Fatalf("filename = %q, want underscores preserved", got)
	}
}

func TestRun_NoBookIDKeepsFilenameUnderscores(t *testing.T) {
	doc := &jsdump.Document{
		Pages: map[string]jsdump.Page{
			"n1": {Sentences: []jsdump.Sentence{{Text: `<p>notes</p>`}}},
		},
		TOC: []jsdump.TOCEntry{
			{PageID: "n1", Title: "Notes", Href: "my_notes_n1.htm", PlayOrder: 1, Linear: "yes"},
		},
	}

	result, err := Run(doc, Options{InputDirName: "mybook"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Meta.BookID != "" {
		t.Fatalf("BookID = %q", result.Meta.BookID)
	}
	if got := result.Docs[0].Filename; got != "my_notes_n1.xhtml" {
		t.Fatalf("filename = %q, want underscores preserved", got)
	}
}

func TestRun_EmptyTOC(t *testing.T) {
	doc := &jsdump.Document{Pages: map[string]jsdump.Page{}}
	if _, err := Run(doc, Options{}, zap.NewNop()); err == nil {
		t.Fatal("expected an error for a dump with no usable pages")
	}
}
