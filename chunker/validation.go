package chunker

import "fmt"

// validateOptions rejects configurations that cannot produce well-formed
// chunks. These are programmer errors: constructors surface them
// synchronously instead of failing mid-chunk.
func validateOptions(o options) error {
	if o.maxChunkSize <= 0 {
		return fmt.Errorf("%w: max chunk size must be positive: %d", ErrInvalidChunkSize, o.maxChunkSize)
	}
	if o.minChunkSize < 0 {
		return fmt.Errorf("%w: min chunk size cannot be negative: %d", ErrInvalidChunkSize, o.minChunkSize)
	}
	if o.minChunkSize >= o.maxChunkSize {
		return fmt.Errorf("%w: min chunk size (%d) must be less than max chunk size (%d)",
			ErrInvalidChunkSize, o.minChunkSize, o.maxChunkSize)
	}
	if o.overlapSize < 0 {
		return fmt.Errorf("%w: overlap size cannot be negative: %d", ErrInvalidOverlap, o.overlapSize)
	}
	if o.overlapSize >= o.maxChunkSize {
		return fmt.Errorf("%w: overlap size (%d) must be less than max chunk size (%d)",
			ErrInvalidOverlap, o.overlapSize, o.maxChunkSize)
	}
	return nil
}
