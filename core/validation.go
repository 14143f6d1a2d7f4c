// Copyright 2025 Tofes AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - FileName must not be empty
//   - Page must not be negative
//
// NOT validated (populated by processors):
//   - Embedding (empty until the embedding step runs; use
//     ValidateEmbedded before persistence)
//   - Summary / Title / URL (optional fields)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.FileName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyFileName)
	}

	if doc.Page < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrNegativePage)
	}

	return nil
}

// ValidateEmbedded checks that a document carries an embedding of exactly
// the configured model dimensionality. An all-zero vector is valid: it is
// the in-band sentinel for "embedding failed, needs re-embedding".
func ValidateEmbedded(doc *Document, dimensions int) error {
	if err := ValidateDocument(doc); err != nil {
		return err
	}

	if len(doc.Embedding) != dimensions {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(doc.Embedding), dimensions)
	}

	return nil
}
