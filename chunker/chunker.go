// Package chunker splits prose into bounded-size segments suitable for
// speech synthesis. Two policies exist: a fine-grained sentence boundary
// search for CJK text and a greedy paragraph accumulator for
// whitespace-delimited languages. Both are pure over their input, produce
// chunks with stable rune-offset spans into the source text, and can lend
// neighboring context to each chunk for prosody continuity.
package chunker

import (
	"context"
	"iter"
	"log/slog"

	"github.com/sevigo/speechsplit/schema"
)

// Chunker splits one text into an ordered chunk sequence.
type Chunker interface {
	Chunk(ctx context.Context, text string) ([]schema.TextChunk, error)
	Stream(text string) iter.Seq[schema.TextChunk]
}

// synthesisTags maps each strategy to the BCP-47 tag recorded in chunk
// metadata unless overridden via WithLanguage.
var synthesisTags = map[schema.Strategy]string{
	schema.StrategyJapanese:  "ja-JP",
	schema.StrategyChinese:   "zh-CN",
	schema.StrategyKorean:    "ko-KR",
	schema.StrategyEnglish:   "en-US",
	schema.StrategyUniversal: "en-US",
}

// ForStrategy builds the chunker implementing the named strategy, typically
// the one recommended by langdetect for the text at hand. CJK strategies get
// the sentence chunker, whitespace-delimited ones the paragraph chunker.
// Options are applied on top of the strategy's defaults.
func ForStrategy(strategy schema.Strategy, logger *slog.Logger, opts ...Option) (Chunker, error) {
	tag, ok := synthesisTags[strategy]
	if !ok {
		return nil, ErrUnknownStrategy
	}
	merged := append([]Option{WithLanguage(tag)}, opts...)

	switch strategy {
	case schema.StrategyJapanese, schema.StrategyChinese, schema.StrategyKorean:
		return NewSentence(logger, merged...)
	default:
		return NewParagraph(logger, merged...)
	}
}
