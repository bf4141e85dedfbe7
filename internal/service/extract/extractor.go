package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/rs/zerolog"
)

// MinTextLength is the minimum number of characters the detection backend
// accepts. It is enforced after extraction, uniformly for every format, and
// independently re-checked by the plain-text detection route.
const MinTextLength = 20

// Strategy extracts plain text from one document format.
type Strategy interface {
	Extract(data []byte) (string, error)
	Method() string
}

// Extractor dispatches a file buffer to the strategy registered for its
// extension. Stateless; one buffer per call.
type Extractor struct {
	strategies map[string]Strategy
	logger     zerolog.Logger
}

func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{
		strategies: map[string]Strategy{
			"pdf":  pdfStrategy{},
			"docx": docxStrategy{},
			"doc":  docxStrategy{},
			"txt":  plainStrategy{name: models.ExtractionMethodUTF8},
			"csv":  plainStrategy{name: models.ExtractionMethodCSV},
		},
		logger: logger,
	}
}

// SupportedFormats returns the extensions with a registered strategy, sorted.
func (e *Extractor) SupportedFormats() []string {
	formats := make([]string, 0, len(e.strategies))
	for ext := range e.strategies {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

// Supports reports whether the extension has a registered strategy.
func (e *Extractor) Supports(extension string) bool {
	_, ok := e.strategies[strings.ToLower(extension)]
	return ok
}

// Extract produces normalized plain text and simple metadata from a document
// buffer. The extension selects the strategy; unsupported extensions fail
// before any processing.
func (e *Extractor) Extract(data []byte, extension string) (*models.ExtractedDocument, error) {
	strategy, ok := e.strategies[strings.ToLower(extension)]
	if !ok {
		return nil, fmt.Errorf("%w: supported: %s", models.ErrUnsupportedFormat,
			strings.Join(e.SupportedFormats(), ", "))
	}

	text, err := strategy.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrExtractionFailed, strategy.Method(), err)
	}

	doc := &models.ExtractedDocument{
		Text:             text,
		ExtractionMethod: strategy.Method(),
		CharCount:        len(text),
		WordCount:        len(strings.Fields(text)),
	}

	if doc.CharCount < MinTextLength {
		return nil, fmt.Errorf("%w: minimum %d characters required", models.ErrDocumentTooShort, MinTextLength)
	}

	e.logger.Debug().
		Str("method", doc.ExtractionMethod).
		Int("chars", doc.CharCount).
		Int("words", doc.WordCount).
		Msg("Document text extracted")

	return doc, nil
}
