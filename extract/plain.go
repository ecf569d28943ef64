package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlainExtractor reads text files as-is, normalizing line endings.
type PlainExtractor struct {
	logger *slog.Logger
}

// NewPlain creates a plain-text extractor.
func NewPlain(logger *slog.Logger) *PlainExtractor {
	return &PlainExtractor{logger: logger}
}

func (e *PlainExtractor) Name() string {
	return "plain"
}

func (e *PlainExtractor) Extensions() []string {
	return []string{".txt", ".text", ".log"}
}

// Extract reads the file and derives a display title from its name.
func (e *PlainExtractor) Extract(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read text file %s: %w", path, err)
	}

	text := normalizeLineEndings(string(data))
	return Document{
		Title: titleFromPath(path),
		Text:  text,
	}, nil
}

func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// titleFromPath turns "my_great_book.txt" into "My Great Book".
func titleFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return cases.Title(language.English).String(base)
}
