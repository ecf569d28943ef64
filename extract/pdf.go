package extract

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	horizontalSpaceRE = regexp.MustCompile(`[ \t]+`)
	blankLineRE       = regexp.MustCompile(`\n[ \t]*\n`)
	excessNewlinesRE  = regexp.MustCompile(`\n{3,}`)
)

// PDFExtractor pulls page text out of PDF files. Pages are joined with
// blank lines so the paragraph chunking policy treats each page break as a
// paragraph boundary.
type PDFExtractor struct {
	logger *slog.Logger
}

// NewPDF creates a PDF extractor.
func NewPDF(logger *slog.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

func (e *PDFExtractor) Name() string {
	return "pdf"
}

func (e *PDFExtractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract reads every page's plain text. Pages the library cannot decode
// are skipped with a warning rather than failing the whole document.
func (e *PDFExtractor) Extract(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open PDF file %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Document{}, fmt.Errorf("failed to stat PDF file %s: %w", path, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return Document{}, fmt.Errorf("failed to read PDF file %s: %w", path, err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			e.logger.Warn("skipping null PDF page", "page", i, "path", path)
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("failed to extract PDF page text", "page", i, "path", path, "error", err)
			continue
		}
		if cleaned := cleanPageText(content); cleaned != "" {
			pages = append(pages, cleaned)
		}
	}

	e.logger.Debug("pdf extraction completed", "path", path,
		"pages", numPages, "pages_with_text", len(pages))

	return Document{
		Title: titleFromPath(path),
		Text:  strings.Join(pages, "\n\n"),
	}, nil
}

// cleanPageText collapses layout whitespace that PDF extraction leaves
// behind.
func cleanPageText(text string) string {
	text = normalizeLineEndings(text)
	text = horizontalSpaceRE.ReplaceAllString(text, " ")
	text = blankLineRE.ReplaceAllString(text, "\n\n")
	text = excessNewlinesRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
