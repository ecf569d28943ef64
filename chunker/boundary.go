package chunker

// Character classes driving the boundary search. Cut points are preferred in
// this order: sentence end, clause separator, line break, pair-safe
// position, hard cutoff.
var (
	sentenceEnders = map[rune]bool{
		'。': true, '！': true, '？': true,
		'.': true, '!': true, '?': true,
	}

	clauseSeparators = map[rune]bool{
		'、': true, '，': true,
	}

	pairOpeners = map[rune]bool{
		'「': true, '『': true, '(': true, '【': true, '（': true, '[': true,
	}

	pairClosers = map[rune]bool{
		'」': true, '』': true, ')': true, '】': true, '）': true, ']': true,
	}
)

// pairTracker counts bracket/quote nesting across a forward scan. The
// straight double quote has no distinct closer, so it toggles.
type pairTracker struct {
	depth   int
	inQuote bool
}

func (t *pairTracker) observe(r rune) {
	switch {
	case r == '"':
		if t.inQuote {
			t.inQuote = false
			if t.depth > 0 {
				t.depth--
			}
		} else {
			t.inQuote = true
			t.depth++
		}
	case pairOpeners[r]:
		t.depth++
	case pairClosers[r]:
		// Unbalanced closers are absorbed rather than driving the count
		// negative; the hard cutoff covers genuinely broken input.
		if t.depth > 0 {
			t.depth--
		}
	}
}

// boundaryFinder locates chunk end positions in a rune slice. The nesting
// depth before every position is precomputed once so pair-safety checks stay
// O(1) during the backward scans.
type boundaryFinder struct {
	runes  []rune
	depths []int
	quotes []bool
}

func newBoundaryFinder(runes []rune) *boundaryFinder {
	depths := make([]int, len(runes)+1)
	quotes := make([]bool, len(runes)+1)
	var tracker pairTracker
	for i, r := range runes {
		depths[i] = tracker.depth
		quotes[i] = tracker.inQuote
		tracker.observe(r)
	}
	depths[len(runes)] = tracker.depth
	quotes[len(runes)] = tracker.inQuote
	return &boundaryFinder{runes: runes, depths: depths, quotes: quotes}
}

// insidePair reports whether the given position sits inside an open
// bracket/quote pair, counted from the start of the entire text. It guards
// against cutting at sentence punctuation that belongs to a quotation.
func (f *boundaryFinder) insidePair(pos int) bool {
	return f.depths[pos] > 0
}

// findChunkEnd computes the best end offset for a chunk starting at start,
// searching backward inside the window [start, start+maxSize) and never
// cutting before start+minSize. When no qualifying boundary exists the
// window edge wins: the hard cutoff may split mid-word on degenerate input,
// which is accepted rather than masked.
func (f *boundaryFinder) findChunkEnd(start, maxSize, minSize int) int {
	if start+maxSize >= len(f.runes) {
		return len(f.runes)
	}

	maxEnd := start + maxSize
	minEnd := start + minSize

	// Rightmost pair-safe sentence end.
	for i := maxEnd - 1; i >= minEnd; i-- {
		if sentenceEnders[f.runes[i]] && !f.insidePair(i) {
			return i + 1
		}
	}

	// Rightmost pair-safe clause separator.
	for i := maxEnd - 1; i >= minEnd; i-- {
		if clauseSeparators[f.runes[i]] && !f.insidePair(i) {
			return i + 1
		}
	}

	// Rightmost line break.
	for i := maxEnd - 1; i >= minEnd; i-- {
		if f.runes[i] == '\n' {
			return i + 1
		}
	}

	// Pair-safety fallback: the last position in the window where bracket
	// nesting returns to zero. A window with balanced brackets throughout
	// yields maxEnd itself.
	tracker := pairTracker{depth: f.depths[start], inQuote: f.quotes[start]}
	best := -1
	for i := start; i < maxEnd; i++ {
		tracker.observe(f.runes[i])
		if tracker.depth == 0 && i+1 > minEnd {
			best = i + 1
		}
	}
	if best > 0 {
		return best
	}

	return maxEnd
}

// hasCompleteSentence reports whether text ends in sentence-final
// punctuation, ignoring any trailing closing brackets or quotes so that
// quoted sentences like 「…。」 count as complete.
func hasCompleteSentence(text string) bool {
	runes := []rune(text)
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if pairClosers[r] || r == '"' {
			continue
		}
		return sentenceEnders[r]
	}
	return false
}
