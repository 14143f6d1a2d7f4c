// Package store defines the interface to the external persistent store the
// pipeline writes Documents into. The pgvector subpackage implements it on
// PostgreSQL with the pgvector extension.
package store
