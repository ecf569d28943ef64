package chunker

// options holds configuration settings shared by the chunkers and the
// optimizer.
type options struct {
	maxChunkSize int
	minChunkSize int
	overlapSize  int
	language     string
}

// Option is a function type for configuring a chunker.
type Option func(*options)

// WithMaxChunkSize sets the target chunk size in runes.
func WithMaxChunkSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.maxChunkSize = size
		}
	}
}

// WithMinChunkSize sets the minimum chunk size in runes. The boundary search
// never cuts before this many runes, and the optimizer merges chunks that
// fall below it.
func WithMinChunkSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.minChunkSize = size
		}
	}
}

// WithOverlapSize sets how many runes of neighbor context each chunk carries
// for prosody continuity. Zero disables overlap.
func WithOverlapSize(size int) Option {
	return func(o *options) {
		if size >= 0 {
			o.overlapSize = size
		}
	}
}

// WithLanguage sets the BCP-47 tag recorded in chunk metadata and passed
// through to the synthesis backend.
func WithLanguage(tag string) Option {
	return func(o *options) {
		o.language = tag
	}
}
