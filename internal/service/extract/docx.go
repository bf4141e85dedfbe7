package extract

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

type docxStrategy struct{}

func (docxStrategy) Method() string {
	return models.ExtractionMethodDocx
}

// Extract pulls the raw text of every paragraph and table in document order,
// one line per body item.
func (docxStrategy) Extract(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			fmt.Fprintln(&sb, item)
		}
	}

	return sb.String(), nil
}
