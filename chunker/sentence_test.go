package chunker_test

import (
	"context"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/speechsplit/chunker"
	logger "github.com/sevigo/speechsplit/testing"
)

func newSentenceChunker(t *testing.T, opts ...chunker.Option) *chunker.SentenceChunker {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	c, err := chunker.NewSentence(log, opts...)
	require.NoError(t, err)
	return c
}

func TestNewSentence_InvalidOptions(t *testing.T) {
	log, _ := logger.NewTestLogger(t)

	tests := []struct {
		name string
		opts []chunker.Option
		want error
	}{
		{
			"min not below max",
			[]chunker.Option{chunker.WithMaxChunkSize(50), chunker.WithMinChunkSize(50)},
			chunker.ErrInvalidChunkSize,
		},
		{
			"overlap not below max",
			[]chunker.Option{chunker.WithMaxChunkSize(100), chunker.WithOverlapSize(100)},
			chunker.ErrInvalidOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chunker.NewSentence(log, tt.opts...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSentenceChunker_EmptyInput(t *testing.T) {
	c := newSentenceChunker(t)

	for _, text := range []string{"", "   ", "\n\n\t"} {
		chunks, err := c.Chunk(context.Background(), text)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestSentenceChunker_SingleChunk(t *testing.T) {
	c := newSentenceChunker(t, chunker.WithMaxChunkSize(100), chunker.WithMinChunkSize(5))

	chunks, err := c.Chunk(context.Background(), "Hello world.")
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, "Hello world.", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, 1, chunks[0].TotalChunks)
	assert.Equal(t, 0, chunks[0].StartIndex)
	assert.Equal(t, 12, chunks[0].EndIndex)
	assert.True(t, chunks[0].Metadata.HasCompleteSentence)
}

func TestSentenceChunker_SplitsAfterSentenceEnd(t *testing.T) {
	c := newSentenceChunker(t, chunker.WithMaxChunkSize(10), chunker.WithMinChunkSize(2))

	chunks, err := c.Chunk(context.Background(), "これは文です。これも文です。")
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "これは文です。", chunks[0].Text)
	assert.Equal(t, "これも文です。", chunks[1].Text)
	for _, chunk := range chunks {
		assert.True(t, chunk.Metadata.HasCompleteSentence)
		assert.Equal(t, 2, chunk.TotalChunks)
	}
}

func TestSentenceChunker_PairSafetyAcrossQuote(t *testing.T) {
	c := newSentenceChunker(t, chunker.WithMaxChunkSize(8), chunker.WithMinChunkSize(2))

	chunks, err := c.Chunk(context.Background(), "「こんにちは。」と言った。")
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "「こんにちは。」", chunks[0].Text)
	assert.Equal(t, "と言った。", chunks[1].Text)
}

func TestSentenceChunker_Properties(t *testing.T) {
	text := "吾輩は猫である。名前はまだ無い。どこで生れたかとんと見当がつかぬ。\n" +
		"何でも薄暗いじめじめした所でニャーニャー泣いていた事だけは記憶している。"
	c := newSentenceChunker(t, chunker.WithMaxChunkSize(20), chunker.WithMinChunkSize(4))

	chunks, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	runes := []rune(text)
	for i, chunk := range chunks {
		// Dense indexing and backfilled totals.
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.Equal(t, len(chunks), chunk.TotalChunks)

		// No empty chunks, base text matches its span, size bound holds.
		assert.NotEmpty(t, strings.TrimSpace(chunk.Text))
		assert.Equal(t, string(runes[chunk.StartIndex:chunk.EndIndex]), chunk.Text)
		assert.LessOrEqual(t, chunk.Len(), 20)

		// Contiguity modulo skipped whitespace.
		if i > 0 {
			prev := chunks[i-1]
			assert.GreaterOrEqual(t, chunk.StartIndex, prev.EndIndex)
			for _, r := range runes[prev.EndIndex:chunk.StartIndex] {
				assert.True(t, unicode.IsSpace(r))
			}
		}
	}
}

func TestSentenceChunker_CoverageWithoutWhitespace(t *testing.T) {
	// With no whitespace to skip, concatenated chunks reconstruct the text.
	text := "これは文です。これも文です。さらに文です。"
	c := newSentenceChunker(t, chunker.WithMaxChunkSize(10), chunker.WithMinChunkSize(2))

	chunks, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)

	var sb strings.Builder
	for _, chunk := range chunks {
		sb.WriteString(chunk.Text)
	}
	assert.Equal(t, text, sb.String())
}

func TestSentenceChunker_HardCutoffOnDegenerateInput(t *testing.T) {
	text := strings.Repeat("あ", 25)
	c := newSentenceChunker(t, chunker.WithMaxChunkSize(10), chunker.WithMinChunkSize(2))

	chunks, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, 10, chunks[0].Len())
	assert.Equal(t, 10, chunks[1].Len())
	assert.Equal(t, 5, chunks[2].Len())
}

func TestSentenceChunker_Overlap(t *testing.T) {
	text := "これは文です。これも文です。さらに文です。"
	c := newSentenceChunker(t,
		chunker.WithMaxChunkSize(10),
		chunker.WithMinChunkSize(2),
		chunker.WithOverlapSize(3),
	)

	chunks, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	first, middle, last := chunks[0], chunks[1], chunks[2]

	// Outer edges carry no borrowed context.
	assert.Empty(t, first.PreviousOverlap)
	assert.Empty(t, last.NextOverlap)

	assert.Equal(t, "です。", middle.PreviousOverlap)
	assert.Equal(t, "さらに", middle.NextOverlap)
	assert.Equal(t, "です。 これも文です。 さらに", middle.SynthesisText())

	// Base spans are untouched by overlap.
	assert.Equal(t, first.EndIndex, middle.StartIndex)
	assert.Equal(t, "これも文です。", middle.Text)
}

func TestSentenceChunker_OverlapClampedToNeighborLength(t *testing.T) {
	text := "ab. cdefghij."
	c := newSentenceChunker(t,
		chunker.WithMaxChunkSize(10),
		chunker.WithMinChunkSize(1),
		chunker.WithOverlapSize(8),
	)

	chunks, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	// The first chunk is shorter than the overlap size; the whole of it is
	// borrowed, never more.
	assert.Equal(t, chunks[0].Text, chunks[1].PreviousOverlap)
}

func TestSentenceChunker_LanguageMetadata(t *testing.T) {
	c := newSentenceChunker(t, chunker.WithLanguage("ja-JP"))

	chunks, err := c.Chunk(context.Background(), "これは文です。")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "ja-JP", chunks[0].Metadata.Language)
}

func TestSentenceChunker_Deterministic(t *testing.T) {
	text := "吾輩は猫である。名前はまだ無い。どこで生れたかとんと見当がつかぬ。"
	c := newSentenceChunker(t, chunker.WithMaxChunkSize(15), chunker.WithMinChunkSize(3))

	first, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)
	second, err := c.Chunk(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSentenceChunker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newSentenceChunker(t)
	_, err := c.Chunk(ctx, "これは文です。")
	require.ErrorIs(t, err, context.Canceled)
}
