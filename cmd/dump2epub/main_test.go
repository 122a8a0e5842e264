package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dump2epub/internal/converter"
)

func TestFlagDefaults(t *testing.T) {
	if err := rootCmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	outputRoot, _ := rootCmd.Flags().GetString("output-root")
	if outputRoot != "Final_ePUB" {
		t.Fatalf("output-root = %q", outputRoot)
	}
	customCSS, _ := rootCmd.Flags().GetString("custom-css")
	if customCSS != "custom.css" {
		t.Fatalf("custom-css = %q", customCSS)
	}
	verbose, _ := rootCmd.Flags().GetBool("verbose")
	if verbose {
		t.Fatal("verbose should default to false")
	}
}

func TestBuildLogger(t *testing.T) {
	log, err := buildLogger(false)
	if err != nil {
		t.Fatalf("buildLogger() error = %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug enabled without --verbose")
	}

	log, err = buildLogger(true)
	if err != nil {
		t.Fatalf("buildLogger() error = %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug not enabled with --verbose")
	}
}

func TestRun_MissingInputDir(t *testing.T) {
	err := run(filepath.Join(t.TempDir(), "absent"), t.TempDir(), "", converter.Metadata{}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want missing-directory error", err)
	}
}

func TestRun_MissingDumpFile(t *testing.T) {
	inputDir := t.TempDir()
	err := run(inputDir, t.TempDir(), "", converter.Metadata{}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "loading content dump") {
		t.Fatalf("err = %v, want load error", err)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "mybook")
	mediaDir := filepath.Join(inputDir, "media")
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		t.Fatal(err)
	}

	dump := `var content = {
  BookId: '12345',
  BookTitle: 'Sample Book',
  BookAuthor: 'An Author',
  Styles: ['12345.css'],
  Pages: {
    c01: {sentences: [{sentence_text: '<p class="indent">Hello.</p>'}]},
  },
  Toc: {
    c01: {title: 'Chapter 1', href: '12345_c01.htm', playOrder: 1, linear: 'yes'},
  },
};`
	if err := os.WriteFile(filepath.Join(inputDir, "mybook.js"), []byte(dump), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mediaDir, "12345.css"), []byte("p {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outputRoot := filepath.Join(root, "out")
	if err := run(inputDir, outputRoot, "", converter.Metadata{}, zap.NewNop()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	epubPath := filepath.Join(outputRoot, "sample-book_12345.epub")
	if _, err := os.Stat(epubPath); err != nil {
		t.Fatalf("expected package at %s: %v", epubPath, err)
	}
}

func TestRun_MetadataFreeDumpNamedFromDefaults(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "mybook")
	if err := os.MkdirAll(filepath.Join(inputDir, "media"), 0o755); err != nil {
		t.Fatal(err)
	}

	dump := `var content = {
  Pages: {
    n1: {sentences: [{sentence_text: '<p class="indent">Just notes.</p>'}]},
  },
  Toc: {
    n1: {title: 'Notes', href: 'my_notes_n1.htm', playOrder: 1, linear: 'yes'},
  },
};`
	if err := os.WriteFile(filepath.Join(inputDir, "mybook.js"), []byte(dump), 0o644); err != nil {
		t.Fatal(err)
	}

	outputRoot := filepath.Join(root, "out")
	if err := run(inputDir, outputRoot, "", converter.Metadata{}, zap.NewNop()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	epubPath := filepath.Join(outputRoot, "book-title_Book_Id.epub")
	if _, err := os.Stat(epubPath); err != nil {
		t.Fatalf("expected default-named package at %s: %v", epubPath, err)
	}
}
