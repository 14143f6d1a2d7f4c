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

import "errors"

// Domain errors
var (
	// ErrNotFound indicates a document file does not exist at the given path.
	ErrNotFound = errors.New("document not found")

	// ErrMalformed indicates a document file could not be parsed.
	ErrMalformed = errors.New("malformed document")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyFileName indicates the FileName field is empty.
	ErrEmptyFileName = errors.New("file name cannot be empty")

	// ErrNegativePage indicates the Page ordinal is negative.
	ErrNegativePage = errors.New("page cannot be negative")

	// ErrDimensionMismatch indicates the embedding length does not match the
	// configured model dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
