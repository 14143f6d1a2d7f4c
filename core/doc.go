// Package core defines the Document model shared by every stage of the
// ingestion pipeline: construction from source files, markdown rendering,
// on-disk persistence in structured and readable forms, and validation of
// the invariants the external store relies on.
package core
