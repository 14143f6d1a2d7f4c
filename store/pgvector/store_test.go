package pgvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{ConnString: "postgresql://localhost/docs"}.withDefaults()

	assert.Equal(t, "form_docs", cfg.TableName)
	assert.Equal(t, 3072, cfg.Dimensions)
}

func TestConfigExplicitValuesKept(t *testing.T) {
	cfg := Config{TableName: "kol_zchut_docs", Dimensions: 1536}.withDefaults()

	assert.Equal(t, "kol_zchut_docs", cfg.TableName)
	assert.Equal(t, 1536, cfg.Dimensions)
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "hello", sanitizeUTF8("hello"))
	assert.Equal(t, "שלום", sanitizeUTF8("שלום"))

	// Invalid byte sequences are stripped, valid runes survive.
	assert.Equal(t, "ab", sanitizeUTF8("a\xffb"))
}

func TestSanitizePtr(t *testing.T) {
	assert.Nil(t, sanitizePtr(nil))

	s := "a\xffb"
	clean := sanitizePtr(&s)
	assert.Equal(t, "ab", *clean)
}
