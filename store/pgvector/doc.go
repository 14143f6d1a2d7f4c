// Package pgvector implements store.DocumentStore on PostgreSQL with the
// pgvector extension. It bootstraps its own schema (table plus ivfflat
// cosine index) and upserts one row per document chunk.
package pgvector
