package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

const providerName = "pdf"

// Extractor implements TextExtractor on top of github.com/ledongthuc/pdf
type Extractor struct {
	logger *zap.Logger
}

// Ensure Extractor implements the TextExtractor interface
var _ repositories.TextExtractor = (*Extractor)(nil)

// NewExtractor creates a new PDF text extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractText concatenates the plain text of every page in document order.
// Pages that yield no text are skipped; every other page is followed by a newline.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", domain.MalformedInputError(providerName, fmt.Errorf("failed to open PDF: %w", err))
	}
	defer file.Close()

	var text strings.Builder
	pages := reader.NumPage()
	extracted := 0

	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", domain.UpstreamError(providerName, fmt.Errorf("extraction cancelled: %w", err))
		}

		page := reader.Page(i)
		if page.V.IsNull() || page.V.Key("Contents").IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", domain.MalformedInputError(providerName, fmt.Errorf("failed to extract text from page %d: %w", i, err))
		}
		if pageText == "" {
			continue
		}

		text.WriteString(pageText)
		text.WriteString("\n")
		extracted++
	}

	e.logger.Info("Extracted text from PDF",
		zap.Int("pages", pages),
		zap.Int("pagesWithText", extracted),
		zap.Int("chars", text.Len()))

	return text.String(), nil
}
