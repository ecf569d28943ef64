package chunker

import (
	"context"
	"iter"
	"log/slog"

	"github.com/sevigo/speechsplit/schema"
)

// SentenceChunker splits text with the fine-grained boundary search,
// preferring sentence-final punctuation over clause separators over line
// breaks. It is the policy of choice for Japanese and other CJK prose,
// where whitespace carries no word-boundary information.
//
// A chunker holds no mutable state: one instance may chunk any number of
// texts from any number of goroutines.
type SentenceChunker struct {
	opts   options
	logger *slog.Logger
}

var _ Chunker = (*SentenceChunker)(nil)

// NewSentence creates a SentenceChunker. Invalid option combinations are
// rejected here, never at chunk time.
func NewSentence(logger *slog.Logger, opts ...Option) (*SentenceChunker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	o := options{
		maxChunkSize: defaultSentenceChunkSize,
		minChunkSize: defaultMinChunkSize,
		overlapSize:  defaultOverlapSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateOptions(o); err != nil {
		return nil, err
	}

	return &SentenceChunker{
		opts:   o,
		logger: logger.With("component", "sentence_chunker"),
	}, nil
}

// Chunk splits text into an ordered, fully indexed chunk sequence. Empty or
// whitespace-only input yields an empty sequence, not an error. The context
// is checked between chunks so callers can abandon very large texts.
func (c *SentenceChunker) Chunk(ctx context.Context, text string) ([]schema.TextChunk, error) {
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

	c.logger.Debug("sentence chunking completed",
		"input_runes", len([]rune(text)), "chunks", len(chunks))
	return chunks, nil
}

// Stream yields chunks lazily as each boundary is found, without
// materializing the whole sequence. TotalChunks is unknown mid-stream and
// left zero; consumers needing it must count. Stopping iteration early is
// the cancellation mechanism, no cleanup required.
func (c *SentenceChunker) Stream(text string) iter.Seq[schema.TextChunk] {
	return streamChunks(c.each, text, c.opts.overlapSize)
}

// each drives the boundary finder across the whole text, invoking fn for
// every raw chunk in order. Runs of plain ASCII whitespace between chunks
// are skipped and belong to no chunk, so consecutive base spans may leave a
// whitespace-only gap.
func (c *SentenceChunker) each(text string, fn func(schema.TextChunk) bool) {
	runes := []rune(text)
	finder := newBoundaryFinder(runes)

	index := 0
	start := skipWhitespace(runes, 0)
	for start < len(runes) {
		end := finder.findChunkEnd(start, c.opts.maxChunkSize, c.opts.minChunkSize)
		contentEnd := trimTrailingWhitespace(runes, start, end)
		if contentEnd > start {
			chunk := schema.TextChunk{
				Text:       string(runes[start:contentEnd]),
				StartIndex: start,
				EndIndex:   contentEnd,
				ChunkIndex: index,
				Metadata: schema.ChunkMetadata{
					HasCompleteSentence: hasCompleteSentence(string(runes[start:contentEnd])),
					Language:            c.opts.language,
				},
			}
			index++
			if !fn(chunk) {
				return
			}
		}
		start = skipWhitespace(runes, end)
	}
}

// skipWhitespace advances past plain ASCII whitespace starting at pos.
func skipWhitespace(runes []rune, pos int) int {
	for pos < len(runes) {
		switch runes[pos] {
		case ' ', '\n', '\t', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// trimTrailingWhitespace shrinks end so [start, end) carries no trailing
// ASCII whitespace, keeping EndIndex-StartIndex equal to the chunk's rune
// length.
func trimTrailingWhitespace(runes []rune, start, end int) int {
	for end > start {
		switch runes[end-1] {
		case ' ', '\n', '\t', '\r':
			end--
		default:
			return end
		}
	}
	return end
}
