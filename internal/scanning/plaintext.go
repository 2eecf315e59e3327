package scanning

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PlainText implements the TextExtractor interface with a pure Go PDF
// reader, for environments where the MuPDF cgo dependency is not
// available.
type PlainText struct{}

// NewPlainText creates a new PlainText TextExtractor instance
func NewPlainText() *PlainText {
	return &PlainText{}
}

// ExtractText returns the full plain text of the document
func (p *PlainText) ExtractText(data []byte) (text string, err error) {
	// The upstream reader panics on some malformed files; surface that
	// as an error so callers can degrade to empty text.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting text: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("reading extracted text: %w", err)
	}
	return buf.String(), nil
}

// Close releases resources held by the extractor
func (p *PlainText) Close() error {
	return nil
}
