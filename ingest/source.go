package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SourceEntity is one extracted entity from the upstream parser, typed
// free-form ("summary", "table", ...).
type SourceEntity struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SourceFile is the raw JSON produced by the upstream OCR/parse step.
// Which fields are populated depends on the extractor: crawled pages carry
// content, parsed forms carry text plus entities.
type SourceFile struct {
	FileName string         `json:"file_name"`
	Title    *string        `json:"title"`
	URL      *string        `json:"url"`
	Content  string         `json:"content"`
	Text     string         `json:"text"`
	Entities []SourceEntity `json:"entities"`
}

// ReadSourceFile parses one upstream JSON file.
func ReadSourceFile(path string) (*SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
	}

	var src SourceFile
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSource, path, err)
	}
	return &src, nil
}

// Body returns the document body, preferring the crawled content field over
// the parsed text field.
func (s *SourceFile) Body() string {
	if s.Content != "" {
		return s.Content
	}
	return s.Text
}

// RawText returns the parsed text field, falling back to content.
func (s *SourceFile) RawText() string {
	if s.Text != "" {
		return s.Text
	}
	return s.Content
}

// SummaryText returns the text of the summary-typed entity, or the first
// entity when none is typed as a summary. Empty when the file carries no
// entities.
func (s *SourceFile) SummaryText() string {
	for _, e := range s.Entities {
		if strings.EqualFold(e.Type, "summary") {
			return e.Text
		}
	}
	if len(s.Entities) > 0 {
		return s.Entities[0].Text
	}
	return ""
}
