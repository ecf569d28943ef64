package chunker

import (
	"log/slog"
	"math"
	"strings"
	"unicode"

	"github.com/sevigo/speechsplit/schema"
)

// Quality score weights: sentence completeness, size uniformity, chunk
// count.
const (
	qualityCompletenessWeight = 0.4
	qualityUniformityWeight   = 0.3
	qualityCountWeight        = 0.3

	// Chunk count at which the count component bottoms out.
	qualityCountCeiling = 100.0
)

// Optimizer post-processes a chunk sequence: undersized chunks are merged
// into their right neighbor when the pair still fits the size ceiling, and
// the whole sequence can be scored for tuning comparisons.
type Optimizer struct {
	opts   options
	logger *slog.Logger
}

// NewOptimizer creates an Optimizer. The min/max sizes should match the
// chunker configuration that produced the sequences it will optimize.
func NewOptimizer(logger *slog.Logger, opts ...Option) (*Optimizer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	o := options{
		maxChunkSize: defaultMaxChunkSize,
		minChunkSize: defaultMinChunkSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateOptions(o); err != nil {
		return nil, err
	}

	return &Optimizer{
		opts:   o,
		logger: logger.With("component", "chunk_optimizer"),
	}, nil
}

// Optimize merges undersized chunks left to right: a chunk below the min
// size absorbs its right neighbor when their combined text stays within the
// max size. The result is re-numbered densely; input chunks are not
// mutated. A sequence with nothing to merge comes back equal apart from the
// re-numbering.
func (o *Optimizer) Optimize(chunks []schema.TextChunk) []schema.TextChunk {
	if len(chunks) == 0 {
		return []schema.TextChunk{}
	}

	merged := 0
	result := make([]schema.TextChunk, 0, len(chunks))
	for i := 0; i < len(chunks); i++ {
		current := chunks[i]
		if i < len(chunks)-1 && current.Len() < o.opts.minChunkSize {
			next := chunks[i+1]
			if current.Len()+next.Len() <= o.opts.maxChunkSize {
				result = append(result, mergeChunks(current, next))
				merged++
				i++
				continue
			}
		}
		result = append(result, current)
	}

	for i := range result {
		result[i].ChunkIndex = i
		result[i].TotalChunks = len(result)
	}

	if merged > 0 {
		o.logger.Debug("merged undersized chunks", "merged", merged,
			"before", len(chunks), "after", len(result))
	}
	return result
}

// mergeChunks combines two adjacent chunks. Bounds span both base ranges,
// overlaps come from the pair's outer edges, and sentence completeness is
// whatever the right-hand chunk ends with.
func mergeChunks(a, b schema.TextChunk) schema.TextChunk {
	return schema.TextChunk{
		Text:            joinTexts(a.Text, b.Text),
		StartIndex:      a.StartIndex,
		EndIndex:        b.EndIndex,
		PreviousOverlap: a.PreviousOverlap,
		NextOverlap:     b.NextOverlap,
		Metadata: schema.ChunkMetadata{
			HasCompleteSentence: b.Metadata.HasCompleteSentence,
			Language:            a.Metadata.Language,
			Merged:              true,
			OriginalChunks:      []int{a.ChunkIndex, b.ChunkIndex},
		},
	}
}

// joinTexts concatenates merged chunk texts. A space is inserted only
// between whitespace-delimited scripts; CJK text is joined directly so the
// synthesis backend does not voice a spurious pause.
func joinTexts(a, b string) string {
	ar := []rune(strings.TrimRight(a, " "))
	br := []rune(strings.TrimLeft(b, " "))
	if len(ar) == 0 {
		return string(br)
	}
	if len(br) == 0 {
		return string(ar)
	}
	if isCJK(ar[len(ar)-1]) || isCJK(br[0]) {
		return string(ar) + string(br)
	}
	return string(ar) + " " + string(br)
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		(r >= 0x3000 && r <= 0x303F) || // CJK punctuation
		(r >= 0xFF00 && r <= 0xFFEF) // fullwidth forms
}

// Quality scores a chunk sequence in [0, 1]: 40% sentence completeness, 30%
// size uniformity, 30% preference for fewer chunks. It is a tuning aid, not
// a runtime decision input. An empty sequence scores zero.
func (o *Optimizer) Quality(chunks []schema.TextChunk) float64 {
	if len(chunks) == 0 {
		return 0.0
	}

	complete := 0
	totalLen := 0
	for _, chunk := range chunks {
		if chunk.Metadata.HasCompleteSentence {
			complete++
		}
		totalLen += chunk.Len()
	}
	completeness := float64(complete) / float64(len(chunks))

	mean := float64(totalLen) / float64(len(chunks))
	uniformity := 1.0
	if mean > 0 {
		var deviation float64
		for _, chunk := range chunks {
			deviation += math.Abs(float64(chunk.Len()) - mean)
		}
		deviation /= float64(len(chunks))
		uniformity = clamp01(1.0 - deviation/mean)
	}

	countScore := clamp01(1.0 - float64(len(chunks))/qualityCountCeiling)

	return qualityCompletenessWeight*completeness +
		qualityUniformityWeight*uniformity +
		qualityCountWeight*countScore
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
