package chunker

import (
	"iter"

	"github.com/sevigo/speechsplit/schema"
)

// eachFunc walks a text's raw chunks in order, stopping when fn returns
// false. Both chunking policies expose their core loop this way so the
// collecting and streaming front ends can share it.
type eachFunc func(text string, fn func(schema.TextChunk) bool)

// streamChunks adapts an eachFunc into a lazy sequence. Overlap needs one
// chunk of lookahead, so each chunk is held back until its successor is
// known; the final chunk is flushed when the walk ends.
func streamChunks(each eachFunc, text string, overlapSize int) iter.Seq[schema.TextChunk] {
	return func(yield func(schema.TextChunk) bool) {
		var pending *schema.TextChunk
		stopped := false
		each(text, func(chunk schema.TextChunk) bool {
			if pending != nil {
				if overlapSize > 0 {
					pending.NextOverlap = headRunes(chunk.Text, overlapSize)
					chunk.PreviousOverlap = tailRunes(pending.Text, overlapSize)
				}
				if !yield(*pending) {
					stopped = true
					return false
				}
			}
			pending = &chunk
			return true
		})
		if pending != nil && !stopped {
			yield(*pending)
		}
	}
}

// applyOverlap lends each chunk up to overlapSize runes of context from its
// neighbors' base text. Base spans are untouched; only the overlap fields
// are filled, and a neighbor shorter than overlapSize contributes what it
// has.
func applyOverlap(chunks []schema.TextChunk, overlapSize int) {
	if overlapSize <= 0 || len(chunks) < 2 {
		return
	}
	for i := range chunks {
		if i > 0 {
			chunks[i].PreviousOverlap = tailRunes(chunks[i-1].Text, overlapSize)
		}
		if i < len(chunks)-1 {
			chunks[i].NextOverlap = headRunes(chunks[i+1].Text, overlapSize)
		}
	}
}

// finalize backfills TotalChunks once the sequence length is known.
func finalize(chunks []schema.TextChunk) {
	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}
}

// headRunes returns the first n runes of text, clamped to its length.
func headRunes(text string, n int) string {
	runes := []rune(text)
	if n >= len(runes) {
		return text
	}
	return string(runes[:n])
}

// tailRunes returns the last n runes of text, clamped to its length.
func tailRunes(text string, n int) string {
	runes := []rune(text)
	if n >= len(runes) {
		return text
	}
	return string(runes[len(runes)-n:])
}
