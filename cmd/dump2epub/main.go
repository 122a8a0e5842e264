package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dump2epub/internal/converter"
	"dump2epub/internal/epub"
	"dump2epub/internal/jsdump"
)

// Fallback identity for dumps that carry no metadata at all; overridden
// by anything found in the dump or passed on the command line.
const (
	defaultBookTitle  = "Book Title"
	defaultBookAuthor = "Book Author"
	defaultBookID     = "Book_Id"
)

var rootCmd = &cobra.Command{
	Use:   "dump2epub <input-dir>",
	Short: "Convert a content dump directory to an EPUB 3 package",
	Long: `dump2epub reads a JavaScript content dump (a directory holding
<dir>.js plus its media/ assets) and builds an accessible, reflowable
EPUB 3 package from it.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := filepath.Clean(args[0])
		outputRoot, _ := cmd.Flags().GetString("output-root")
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		bookID, _ := cmd.Flags().GetString("book-id")
		customCSS, _ := cmd.Flags().GetString("custom-css")
		verbose, _ := cmd.Flags().GetBool("verbose")

		log, err := buildLogger(verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		return run(inputDir, outputRoot, customCSS, converter.Metadata{
			Title:  title,
			Author: author,
			BookID: bookID,
		}, log)
	},
}

func run(inputDir, outputRoot, customCSS string, overrides converter.Metadata, log *zap.Logger) error {
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("input directory %s not found", inputDir)
	}

	dumpPath := filepath.Join(inputDir, filepath.Base(inputDir)+".js")
	doc, err := jsdump.Load(dumpPath)
	if err != nil {
		return fmt.Errorf("loading content dump: %w", err)
	}
	log.Info("content dump loaded",
		zap.String("path", dumpPath),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("toc_entries", len(doc.TOC)))

	if customCSS != "" {
		if _, err := os.Stat(customCSS); err != nil {
			log.Debug("no custom stylesheet", zap.String("path", customCSS))
			customCSS = ""
		}
	}

	result, err := converter.Run(doc, converter.Options{
		InputDirName: filepath.Base(inputDir),
		Defaults: converter.Metadata{
			Title:  defaultBookTitle,
			Author: defaultBookAuthor,
			BookID: defaultBookID,
		},
		Overrides:    overrides,
		HasCustomCSS: customCSS != "",
	}, log)
	if err != nil {
		return fmt.Errorf("converting pages: %w", err)
	}

	book := &epub.Book{
		Meta:        result.Meta,
		Docs:        result.Docs,
		Chapters:    result.Chapters,
		InputDir:    inputDir,
		MainCSS:     result.MainCSS,
		CoverSource: result.CoverSource,
		CustomCSS:   customCSS,
	}
	out, err := epub.NewWriter(book, log).Write(outputRoot)
	if err != nil {
		return fmt.Errorf("writing package: %w", err)
	}

	log.Info("package written",
		zap.String("path", out),
		zap.String("title", result.Meta.Title),
		zap.String("book_id", result.Meta.BookID),
		zap.Int("pages", len(result.Docs)))
	return nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}

func init() {
	rootCmd.Flags().StringP("output-root", "o", "Final_ePUB", "Directory the finished .epub is placed in")
	rootCmd.Flags().String("title", "", "Override the book title")
	rootCmd.Flags().String("author", "", "Override the book author")
	rootCmd.Flags().String("book-id", "", "Override the book identifier")
	rootCmd.Flags().String("custom-css", "custom.css", "Optional stylesheet appended to the package")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
