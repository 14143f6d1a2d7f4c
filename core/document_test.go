package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleDocument() *Document {
	return &Document{
		FileName: "form_101_chunk_1",
		Page:     1,
		Title:    strPtr("Form 101 Guide"),
		Summary:  strPtr("How to fill in section A"),
		Content:  "Section A covers employee details. Fill in your full name.",
		URL:      strPtr("https://example.com/form101"),
		Metadata: map[string]any{
			"original_filename": "form_101.json",
			"total_chunks":      float64(3),
			"chunk_size":        float64(1000),
			"source":            "parsed",
		},
		Embedding: []float32{0.1, 0.2, 0.3},
	}
}

func TestDocumentIdentity(t *testing.T) {
	doc := sampleDocument()
	assert.Equal(t, "form_101_chunk_1_1", doc.Identity())

	doc = &Document{FileName: "guide", Page: 0}
	assert.Equal(t, "guide_0", doc.Identity())
}

func TestDocumentSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()

	require.NoError(t, doc.Save(dir))

	path := filepath.Join(dir, "form_101_chunk_1_1.json")
	loaded, err := Load(path)
	require.NoError(t, err)

	// Exact round trip, including embedding values and metadata.
	assert.Equal(t, doc, loaded)
}

func TestDocumentSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	doc := sampleDocument()

	require.NoError(t, doc.Save(dir))

	_, err := os.Stat(filepath.Join(dir, doc.Identity()+".json"))
	assert.NoError(t, err)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestMarkdownOmitsNilAndEmptyFields(t *testing.T) {
	doc := &Document{
		FileName: "guide",
		Page:     2,
		Content:  "hello",
	}

	md := doc.Markdown()

	assert.Contains(t, md, "# File Name\nguide\n")
	assert.Contains(t, md, "# Page\n2\n")
	assert.Contains(t, md, "# Content\nhello\n")
	assert.NotContains(t, md, "# Title")
	assert.NotContains(t, md, "# Summary")
	assert.NotContains(t, md, "# Url")
	assert.NotContains(t, md, "# Metadata")
	assert.NotContains(t, md, "# Embedding")
}

func TestMarkdownNeverDumpsEmbeddingValues(t *testing.T) {
	embedding := make([]float32, 3072)
	for i := range embedding {
		embedding[i] = 0.12345
	}
	doc := sampleDocument()
	doc.Embedding = embedding

	md := doc.Markdown()

	assert.Contains(t, md, "Vector with 3072 dimensions")
	assert.NotContains(t, md, "0.12345")
}

func TestMarkdownMetadataBullets(t *testing.T) {
	doc := &Document{
		FileName: "guide",
		Page:     1,
		Content:  "text",
		Metadata: map[string]any{
			"total_chunks": 3,
			"source":       "parsed",
		},
	}

	md := doc.Markdown()

	// Sorted keys: source before total_chunks.
	idx := strings.Index(md, "# Metadata")
	require.GreaterOrEqual(t, idx, 0)
	section := md[idx:]
	assert.Contains(t, section, "- source: parsed")
	assert.Contains(t, section, "- total_chunks: 3")
	assert.Less(t, strings.Index(section, "- source:"), strings.Index(section, "- total_chunks:"))
}

func TestMarkdownRendersEmptySummary(t *testing.T) {
	// The chunking flow sets summary to the empty string, not nil; the
	// section still renders with an empty body.
	doc := &Document{
		FileName: "guide_chunk_1",
		Page:     1,
		Summary:  strPtr(""),
		Content:  "text",
	}

	assert.Contains(t, doc.Markdown(), "# Summary\n\n")
}

func TestSaveMarkdown(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()

	require.NoError(t, doc.SaveMarkdown(dir))

	data, err := os.ReadFile(filepath.Join(dir, doc.Identity()+".md"))
	require.NoError(t, err)
	assert.Equal(t, doc.Markdown(), string(data))
}

func TestChecksumDeterministic(t *testing.T) {
	c1 := Checksum("some chunk content")
	c2 := Checksum("some chunk content")
	c3 := Checksum("other chunk content")

	assert.Equal(t, c1, c2)
	assert.NotEqual(t, c1, c3)
	assert.Len(t, c1, 16) // 8 bytes hex-encoded
}
