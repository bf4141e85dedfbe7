package models

// Extraction method identifiers, one per strategy.
const (
	ExtractionMethodPDF  = "pdf-parse"
	ExtractionMethodDocx = "docx-raw-text"
	ExtractionMethodUTF8 = "utf8-decode"
	ExtractionMethodCSV  = "csv-decode"
)

// ExtractedDocument is the normalized output of document text extraction.
// CharCount always equals len(Text); WordCount is the number of contiguous
// non-whitespace runs.
type ExtractedDocument struct {
	Text             string `json:"text"`
	ExtractionMethod string `json:"extraction_method"`
	CharCount        int    `json:"char_count"`
	WordCount        int    `json:"word_count"`
}
