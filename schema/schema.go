package schema

import (
	"fmt"
	"strings"
)

// Language identifies the dominant script of a text span.
type Language string

const (
	LanguageJapanese Language = "japanese"
	LanguageEnglish  Language = "english"
	LanguageChinese  Language = "chinese"
	LanguageKorean   Language = "korean"
	LanguageMixed    Language = "mixed"
	LanguageUnknown  Language = "unknown"
)

// Strategy names a chunking policy. Sentence strategies use the fine-grained
// boundary search; paragraph strategies accumulate blank-line separated
// paragraphs greedily.
type Strategy string

const (
	StrategyJapanese  Strategy = "japanese"
	StrategyChinese   Strategy = "chinese"
	StrategyKorean    Strategy = "korean"
	StrategyEnglish   Strategy = "english"
	StrategyUniversal Strategy = "universal"
)

// DetectionResult is the outcome of classifying a text span's script
// composition. Ratios need not sum to 1: digits and unclassified characters
// count toward the total but are not attributed to any language.
type DetectionResult struct {
	Primary    Language
	Ratios     map[Language]float64
	Confidence float64
}

// IsMixed reports whether more than one language carries a meaningful share
// of the classified characters.
func (r DetectionResult) IsMixed() bool {
	count := 0
	for _, ratio := range r.Ratios {
		if ratio > 0.1 {
			count++
		}
	}
	return count > 1
}

func (r DetectionResult) String() string {
	return fmt.Sprintf("%s (confidence: %.2f)", r.Primary, r.Confidence)
}

// ChunkMetadata annotates a chunk with facts downstream consumers care
// about. OriginalChunks holds the pre-merge indices when the optimizer
// combined neighboring chunks.
type ChunkMetadata struct {
	HasCompleteSentence bool
	Language            string
	Merged              bool
	OriginalChunks      []int
}

// TextChunk is one bounded unit of text destined for a single synthesis
// call. Text holds the base (un-overlapped) content; StartIndex and EndIndex
// are rune offsets of the base span into the original source text. Context
// borrowed from neighbors lives in PreviousOverlap and NextOverlap and never
// shifts the base bounds.
//
// Chunks are value types: created once per chunking run and never mutated
// afterwards. Replace via copy when a field must change.
type TextChunk struct {
	Text            string
	StartIndex      int
	EndIndex        int
	ChunkIndex      int
	TotalChunks     int
	PreviousOverlap string
	NextOverlap     string
	Metadata        ChunkMetadata
}

// Len returns the chunk's base length in runes.
func (c TextChunk) Len() int {
	return len([]rune(c.Text))
}

// SynthesisText renders the text to hand to the synthesis backend: the base
// text with any borrowed neighbor context joined by single spaces.
func (c TextChunk) SynthesisText() string {
	if c.PreviousOverlap == "" && c.NextOverlap == "" {
		return c.Text
	}
	parts := make([]string, 0, 3)
	if c.PreviousOverlap != "" {
		parts = append(parts, c.PreviousOverlap)
	}
	parts = append(parts, c.Text)
	if c.NextOverlap != "" {
		parts = append(parts, c.NextOverlap)
	}
	return strings.Join(parts, " ")
}

func (c TextChunk) String() string {
	return fmt.Sprintf("chunk %d/%d [%d:%d]", c.ChunkIndex, c.TotalChunks, c.StartIndex, c.EndIndex)
}
