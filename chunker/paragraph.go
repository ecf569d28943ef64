package chunker

import (
	"context"
	"iter"
	"log/slog"

	"github.com/sevigo/speechsplit/schema"
)

// ParagraphChunker splits text on blank-line boundaries and greedily packs
// whole paragraphs into chunks. Paragraphs are never split: one paragraph
// longer than the max chunk size becomes a single oversized chunk, which is
// surfaced as-is for the caller to deal with. This is the policy of choice
// for English and other whitespace-delimited prose.
type ParagraphChunker struct {
	opts   options
	logger *slog.Logger
}

var _ Chunker = (*ParagraphChunker)(nil)

// NewParagraph creates a ParagraphChunker.
func NewParagraph(logger *slog.Logger, opts ...Option) (*ParagraphChunker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	o := options{
		maxChunkSize: defaultMaxChunkSize,
		minChunkSize: defaultMinChunkSize,
		overlapSize:  defaultOverlapSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateOptions(o); err != nil {
		return nil, err
	}

	return &ParagraphChunker{
		opts:   o,
		logger: logger.With("component", "paragraph_chunker"),
	}, nil
}

// Chunk splits text into an ordered, fully indexed chunk sequence. Empty
// input yields an empty sequence.
func (c *ParagraphChunker) Chunk(ctx context.Context, text string) ([]schema.TextChunk, error) {
	var chunks []schema.TextChunk
	var err error

	c.each(text, func(chunk schema.TextChunk) bool {
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
			return false
		}
		chunks = append(chunks, chunk)
		return true
	})
	if err != nil {
		return nil, err
	}

	applyOverlap(chunks, c.opts.overlapSize)
	finalize(chunks)

	c.logger.Debug("paragraph chunking completed",
		"input_runes", len([]rune(text)), "chunks", len(chunks))
	return chunks, nil
}

// Stream yields chunks lazily; TotalChunks stays zero mid-stream.
func (c *ParagraphChunker) Stream(text string) iter.Seq[schema.TextChunk] {
	return streamChunks(c.each, text, c.opts.overlapSize)
}

// span is a paragraph's trimmed [start, end) rune range in the source text.
type span struct {
	start, end int
}

func (c *ParagraphChunker) each(text string, fn func(schema.TextChunk) bool) {
	runes := []rune(text)
	paragraphs := splitParagraphs(runes)
	if len(paragraphs) == 0 {
		return
	}

	index := 0
	emit := func(first, last span) bool {
		content := string(runes[first.start:last.end])
		chunk := schema.TextChunk{
			Text:       content,
			StartIndex: first.start,
			EndIndex:   last.end,
			ChunkIndex: index,
			Metadata: schema.ChunkMetadata{
				HasCompleteSentence: hasCompleteSentence(content),
				Language:            c.opts.language,
			},
		}
		index++
		return fn(chunk)
	}

	first := paragraphs[0]
	last := paragraphs[0]
	accumulated := first.end - first.start

	for _, para := range paragraphs[1:] {
		// Joined length accounting: the paragraph plus its separating blank
		// line.
		paraLen := para.end - para.start
		if accumulated+2+paraLen > c.opts.maxChunkSize {
			if !emit(first, last) {
				return
			}
			first, last = para, para
			accumulated = paraLen
			continue
		}
		last = para
		accumulated += 2 + paraLen
	}
	emit(first, last)
}

// splitParagraphs finds blank-line separated paragraphs as trimmed rune
// spans. A boundary is any whitespace run containing at least two newlines.
func splitParagraphs(runes []rune) []span {
	var spans []span

	start := skipWhitespace(runes, 0)
	if start >= len(runes) {
		return nil
	}

	wsStart := -1
	newlines := 0
	for i := start; i < len(runes); i++ {
		switch runes[i] {
		case '\n':
			if wsStart == -1 {
				wsStart = i
			}
			newlines++
		case ' ', '\t', '\r':
			if wsStart == -1 {
				wsStart = i
				newlines = 0
			}
		default:
			if wsStart != -1 && newlines >= 2 {
				spans = append(spans, span{start: start, end: wsStart})
				start = i
			}
			wsStart = -1
			newlines = 0
		}
	}

	if end := trimTrailingWhitespace(runes, start, len(runes)); end > start {
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}
