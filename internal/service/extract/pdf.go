package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/ledongthuc/pdf"
)

type pdfStrategy struct{}

func (pdfStrategy) Method() string {
	return models.ExtractionMethodPDF
}

// Extract captures the concatenated plain-text stream of the PDF. The parser
// panics on some malformed cross-reference tables, so the panic is converted
// to a regular error.
func (pdfStrategy) Extract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		return "", fmt.Errorf("failed to read pdf stream: %w", err)
	}

	return sb.String(), nil
}
