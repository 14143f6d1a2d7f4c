package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Document is the canonical unit of persisted knowledge: one chunk (or one
// page) of a source artifact, together with its translation, metadata and
// embedding vector.
//
// FileName may be chunk-qualified ("{base}_chunk_{n}"). FileName plus Page
// uniquely identifies a Document within one ingestion run. Documents are
// immutable after creation; reprocessing produces a new record rather than
// an in-place update.
type Document struct {
	FileName  string         `json:"file_name"`
	Page      int            `json:"page"`
	Title     *string        `json:"title"`
	Summary   *string        `json:"summary"`
	Content   string         `json:"content"`
	URL       *string        `json:"url"`
	Metadata  map[string]any `json:"metadata"`
	Embedding []float32      `json:"embedding"`
}

// Metadata keys written by the processors.
const (
	MetaOriginalFilename = "original_filename"
	MetaTotalChunks      = "total_chunks"
	MetaChunkSize        = "chunk_size"
	MetaTokens           = "tokens"
	MetaChecksum         = "checksum"
	MetaSource           = "source"
	MetaEmbeddingError   = "embedding_error"
)

// Identity returns the string key used to detect already-ingested content,
// derived from the file name and page ordinal.
func (d *Document) Identity() string {
	return d.FileName + "_" + strconv.Itoa(d.Page)
}

// Markdown renders the document as a human-readable markdown projection.
// The rendering is lossy: nil fields and empty containers are omitted,
// the metadata map renders as bulleted "key: value" lines, and the
// embedding renders as "Vector with N dimensions" rather than raw floats.
func (d *Document) Markdown() string {
	var b strings.Builder

	writeSection(&b, "File Name", d.FileName)
	writeSection(&b, "Page", strconv.Itoa(d.Page))
	if d.Title != nil {
		writeSection(&b, "Title", *d.Title)
	}
	if d.Summary != nil {
		writeSection(&b, "Summary", *d.Summary)
	}
	writeSection(&b, "Content", d.Content)
	if d.URL != nil {
		writeSection(&b, "Url", *d.URL)
	}
	if len(d.Metadata) > 0 {
		writeSection(&b, "Metadata", renderMetadata(d.Metadata))
	}
	if len(d.Embedding) > 0 {
		writeSection(&b, "Embedding", fmt.Sprintf("Vector with %d dimensions", len(d.Embedding)))
	}

	return b.String()
}

func writeSection(b *strings.Builder, header, value string) {
	b.WriteString("# ")
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(value)
	b.WriteString("\n\n")
}

// renderMetadata renders map entries as bulleted lines. Keys are sorted so
// the rendering is deterministic.
func renderMetadata(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("- %s: %v", k, m[k])
	}
	return strings.Join(lines, "\n")
}

// Save writes the document as indented JSON to "{file_name}_{page}.json"
// under dir, creating the directory if needed. The JSON form round-trips
// through Load.
func (d *Document) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", d.Identity(), err)
	}

	path := filepath.Join(dir, d.Identity()+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", d.Identity(), err)
	}
	return nil
}

// SaveMarkdown writes the markdown rendering to "{file_name}_{page}.md"
// under dir. The markdown form is derived and not round-trippable.
func (d *Document) SaveMarkdown(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create markdown directory: %w", err)
	}

	path := filepath.Join(dir, d.Identity()+".md")
	if err := os.WriteFile(path, []byte(d.Markdown()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown %s: %w", d.Identity(), err)
	}
	return nil
}

// Load reads a document previously written by Save. It returns ErrNotFound
// when the path does not exist and ErrMalformed when the content cannot be
// parsed.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &doc, nil
}
