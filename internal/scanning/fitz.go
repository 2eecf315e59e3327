package scanning

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Fitz implements the TextExtractor interface using the MuPDF bindings.
// This is the default extractor; it handles scanned and exported PDFs
// alike but requires cgo.
type Fitz struct{}

// NewFitz creates a new Fitz TextExtractor instance
func NewFitz() *Fitz {
	return &Fitz{}
}

// ExtractText concatenates the text of every page in the document
func (f *Fitz) ExtractText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	var text strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		page, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", i+1, err)
		}
		text.WriteString(page)
		text.WriteString("\n")
	}
	return text.String(), nil
}

// Close releases resources held by the extractor
func (f *Fitz) Close() error {
	return nil
}
