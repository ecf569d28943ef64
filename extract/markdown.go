package extract

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor renders markdown down to readable prose via the
// goldmark AST. Code blocks and raw HTML are dropped entirely: they carry
// nothing worth synthesizing.
type MarkdownExtractor struct {
	logger *slog.Logger
	md     goldmark.Markdown
}

// NewMarkdown creates a markdown extractor.
func NewMarkdown(logger *slog.Logger) *MarkdownExtractor {
	return &MarkdownExtractor{
		logger: logger,
		md:     goldmark.New(),
	}
}

func (e *MarkdownExtractor) Name() string {
	return "markdown"
}

func (e *MarkdownExtractor) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Extract parses the file and flattens headings, paragraphs and list items
// into blank-line separated prose. The first heading becomes the title,
// falling back to the file name.
func (e *MarkdownExtractor) Extract(path string) (Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read markdown file %s: %w", path, err)
	}

	doc := e.ExtractString(source)
	if doc.Title == "" {
		doc.Title = titleFromPath(path)
	}

	e.logger.Debug("markdown extraction completed", "path", path,
		"text_length", len(doc.Text))
	return doc, nil
}

// ExtractString flattens markdown source into prose blocks. Exposed for
// callers that already hold the content in memory.
func (e *MarkdownExtractor) ExtractString(source []byte) Document {
	root := e.md.Parser().Parse(text.NewReader(source))

	var title string
	var blocks []string

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			block := inlineText(n, source)
			if title == "" && node.Level == 1 {
				title = block
			}
			if block != "" {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			if block := inlineText(n, source); block != "" {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return Document{
		Title: title,
		Text:  strings.Join(blocks, "\n\n"),
	}
}

// inlineText collects the text segments beneath a block node.
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
