// Package ingest orchestrates batch processing of document files: it
// discovers input files, filters out already-ingested ones, and runs a
// FileProcessor over the rest with bounded concurrency, fixed-size paced
// batches and per-file retry. One file's failure never aborts the run; the
// result is a Report of what happened.
package ingest
