package chunker

import "errors"

// Default chunking parameters. Sentence mode targets short chunks so the
// synthesis backend starts producing audio quickly; paragraph mode favors
// larger chunks for prosody across sentences.
const (
	defaultMaxChunkSize      = 1000
	defaultSentenceChunkSize = 200
	defaultMinChunkSize      = 50
	defaultOverlapSize       = 0

	defaultPoolConcurrency = 4
)

var (
	ErrInvalidChunkSize = errors.New("invalid chunk size")
	ErrInvalidOverlap   = errors.New("invalid overlap size")
	ErrUnknownStrategy  = errors.New("unknown chunking strategy")
)
