package mock

import "context"

// MockTranslator is a test double for ai.Translator.
// It allows custom behavior injection via a function field.
type MockTranslator struct {
	// TranslateFunc is called by Translate if set.
	// If nil, returns the input prefixed with the target-language tag.
	TranslateFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockTranslator creates a mock translator with default deterministic
// behavior.
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{}
}

// Translate returns a deterministic pseudo-translation.
func (m *MockTranslator) Translate(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text)
	}

	return "[translated] " + text, nil
}

// CallCount returns the number of times Translate was called.
func (m *MockTranslator) CallCount() int {
	return m.callCount
}
