package extract_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/speechsplit/extract"
	logger "github.com/sevigo/speechsplit/testing"
)

func newRegistry(t *testing.T) *extract.Registry {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	r, err := extract.NewDefaultRegistry(log)
	require.NoError(t, err)
	return r
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegistry_ForFile(t *testing.T) {
	r := newRegistry(t)

	tests := []struct {
		path string
		name string
	}{
		{"book.txt", "plain"},
		{"notes.LOG", "plain"},
		{"README.md", "markdown"},
		{"paper.pdf", "pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e, err := r.ForFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.name, e.Name())
		})
	}
}

func TestRegistry_ForFile_Unknown(t *testing.T) {
	r := newRegistry(t)

	_, err := r.ForFile("image.png")
	require.ErrorIs(t, err, extract.ErrExtractorNotFound)

	_, err = r.ForFile("no_extension")
	require.ErrorIs(t, err, extract.ErrExtractorNotFound)
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	r := extract.NewRegistry(log)

	require.NoError(t, r.Register(extract.NewPlain(log)))
	require.Error(t, r.Register(extract.NewPlain(log)))
}

func TestPlainExtractor(t *testing.T) {
	path := writeFile(t, "my_great_book.txt", "First line.\r\nSecond line.\rThird line.")
	r := newRegistry(t)

	doc, err := r.Extract(path)
	require.NoError(t, err)

	assert.Equal(t, "My Great Book", doc.Title)
	assert.Equal(t, "First line.\nSecond line.\nThird line.", doc.Text)
}

func TestMarkdownExtractor(t *testing.T) {
	source := `# The Title

First paragraph of prose.

` + "```go\nfmt.Println(\"not spoken\")\n```" + `

## Section

Second paragraph.
`
	path := writeFile(t, "chapter-one.md", source)
	r := newRegistry(t)

	doc, err := r.Extract(path)
	require.NoError(t, err)

	assert.Equal(t, "The Title", doc.Title)
	assert.Contains(t, doc.Text, "First paragraph of prose.")
	assert.Contains(t, doc.Text, "Second paragraph.")
	assert.NotContains(t, doc.Text, "Println")

	// Blocks come out blank-line separated so the paragraph chunker can
	// pick them apart again.
	assert.Contains(t, doc.Text, "First paragraph of prose.\n\nSection")
}

func TestMarkdownExtractor_TitleFallsBackToFilename(t *testing.T) {
	path := writeFile(t, "untitled_draft.md", "Just a paragraph, no heading.")
	r := newRegistry(t)

	doc, err := r.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Draft", doc.Title)
}

func TestMarkdownExtractor_ExtractString(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	e := extract.NewMarkdown(log)

	doc := e.ExtractString([]byte("# 吾輩は猫である\n\n名前はまだ無い。\nどこで生れたか。\n"))
	assert.Equal(t, "吾輩は猫である", doc.Title)
	// Soft line breaks inside a paragraph survive as newlines.
	assert.Contains(t, doc.Text, "名前はまだ無い。\nどこで生れたか。")
}

func TestPDFExtractor_MissingFile(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Extract(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
}
