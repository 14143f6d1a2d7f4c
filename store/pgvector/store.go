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

package pgvector

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/tofes-ai/docload/core"
)

// Config holds connection and schema settings for the store.
type Config struct {
	// ConnString is the PostgreSQL connection string.
	ConnString string

	// TableName is the target table. Default: "form_docs"
	TableName string

	// Dimensions is the embedding column width. Must match the configured
	// embedding model. Default: 3072
	Dimensions int
}

// withDefaults fills unset fields with their defaults.
func (c Config) withDefaults() Config {
	if c.TableName == "" {
		c.TableName = "form_docs"
	}
	if c.Dimensions == 0 {
		c.Dimensions = 3072
	}
	return c
}

// Store implements store.DocumentStore on PostgreSQL + pgvector.
type Store struct {
	config Config
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New connects to PostgreSQL, verifies the connection, and bootstraps the
// schema (vector extension, table, ivfflat index).
func New(ctx context.Context, config Config) (*Store, error) {
	config = config.withDefaults()

	poolConfig, err := pgxpool.ParseConfig(config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		config: config,
		pool:   pool,
		logger: slog.Default().With("component", "pgvector-store"),
	}

	if err := s.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			file_name TEXT NOT NULL,
			page INTEGER NOT NULL,
			title TEXT,
			summary TEXT,
			content TEXT,
			url TEXT,
			metadata JSONB,
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.config.TableName, s.config.Dimensions)

	if _, err := s.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		s.config.TableName, s.config.TableName)

	if _, err := s.pool.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// Upsert inserts or replaces one document row, keyed by identity.
func (s *Store) Upsert(ctx context.Context, doc *core.Document) error {
	if err := core.ValidateEmbedded(doc, s.config.Dimensions); err != nil {
		return err
	}

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, file_name, page, title, summary, content, url, metadata, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (id) DO UPDATE SET
			summary = EXCLUDED.summary,
			content = EXCLUDED.content,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding`,
		s.config.TableName)

	_, err := s.pool.Exec(ctx, stmt,
		doc.Identity(),
		sanitizeUTF8(doc.FileName),
		doc.Page,
		sanitizePtr(doc.Title),
		sanitizePtr(doc.Summary),
		sanitizeUTF8(doc.Content),
		doc.URL,
		doc.Metadata,
		pgvector.NewVector(doc.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", doc.Identity(), err)
	}

	s.logger.Debug("upserted document", "identity", doc.Identity())
	return nil
}

// ListIdentities returns the identity of every stored document.
func (s *Store) ListIdentities(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT id FROM %s", s.config.TableName)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query identities: %w", err)
	}
	defer rows.Close()

	var identities []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan identity row: %w", err)
		}
		identities = append(identities, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read identity rows: %w", err)
	}

	return identities, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// sanitizeUTF8 strips invalid UTF-8 sequences; OCR output occasionally
// carries them and PostgreSQL rejects the row otherwise.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	v := make([]rune, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size == 1 {
				continue
			}
		}
		v = append(v, r)
	}
	return string(v)
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitizeUTF8(*s)
	return &clean
}
