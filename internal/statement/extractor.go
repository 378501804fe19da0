// Package statement turns a vendor statement PDF into structured invoice
// records: a text extractor pulls the embedded page text, and a parser scans
// it for invoice lines.
package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// ErrDocumentParse is returned when the vendor statement bytes are not a
// readable PDF document.
var ErrDocumentParse = errors.New("vendor statement is not a readable PDF document")

// PDFExtractor extracts embedded text from PDF documents using MuPDF.
// No OCR: pages without extractable text contribute empty strings.
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor creates a new PDF text extractor.
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// ExtractText returns the plain text of every page in page order, joined by
// newlines. Returns ErrDocumentParse if the bytes are not a well-formed PDF.
func (e *PDFExtractor) ExtractText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]string, 0, pageCount)
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrDocumentParse, pageNum+1, err)
		}
		pages = append(pages, text)
	}

	e.logger.Debug("extracted statement text",
		zap.Int("pages", pageCount))

	return strings.Join(pages, "\n"), nil
}
