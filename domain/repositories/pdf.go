package repositories

import "context"

// TextExtractor abstracts document text extraction
type TextExtractor interface {
	// ExtractText returns the text of the document at path, pages in document order
	ExtractText(ctx context.Context, path string) (string, error)
}
