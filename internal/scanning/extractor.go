package scanning

// TextExtractor defines the interface for pulling plain text out of a
// PDF. Implementations return an error on malformed input; callers are
// expected to degrade to empty text rather than abort.
type TextExtractor interface {
	// ExtractText returns the full text content of the document
	ExtractText(data []byte) (string, error)
	// Close closes the extractor and releases resources
	Close() error
}
