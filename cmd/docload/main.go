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

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "docload",
		Usage: "Document ingestion pipeline: chunk, translate and load form guides into a vector store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chunk",
				Usage:  "Split raw extracted JSON files into embedded document chunks",
				Action: chunkCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Directory of raw extracted JSON files",
						Value:   "./documents_raw",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for document JSON output",
						Value:   "./documents",
					},
					&cli.StringFlag{
						Name:  "markdown",
						Usage: "Directory for markdown renderings (empty to skip)",
						Value: "./documents_md",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Token budget per chunk",
						Value: 1000,
					},
				}, append(embeddingFlags(), pipelineFlags()...)...),
			},
			{
				Name:   "translate",
				Usage:  "Translate parsed page summaries and embed one document per page",
				Action: translateCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Directory of parsed page JSON files",
						Value:   "./parsed",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for document JSON output",
						Value:   "./documents",
					},
					&cli.StringFlag{
						Name:  "markdown",
						Usage: "Directory for markdown renderings (empty to skip)",
						Value: "./documents",
					},
					&cli.StringFlag{
						Name:  "chat-model",
						Usage: "Chat model used for translation",
						Value: "gpt-4",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Translation target language",
						Value: "Hebrew",
					},
				}, append(embeddingFlags(), pipelineFlags()...)...),
			},
			{
				Name:   "load",
				Usage:  "Load persisted documents into the vector store",
				Action: loadCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "docs",
						Aliases: []string{"d"},
						Usage:   "Directory of persisted document JSON files",
						Value:   "./documents",
						EnvVars: []string{"DOCS_DIRECTORY"},
					},
					&cli.StringFlag{
						Name:    "database-url",
						Usage:   "PostgreSQL connection string",
						EnvVars: []string{"DATABASE_URL"},
					},
					&cli.StringFlag{
						Name:    "table",
						Usage:   "Target table name",
						Value:   "form_docs",
						EnvVars: []string{"DB_TABLE"},
					},
					&cli.IntFlag{
						Name:  "dimensions",
						Usage: "Embedding column width (0 derives from embedding-model)",
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model the documents were embedded with",
						Value:   "text-embedding-3-large",
						EnvVars: []string{"EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:  "dedup",
						Usage: "Behavior when listing ingested documents fails (fail-open, fail-closed)",
						Value: "fail-open",
					},
				}, pipelineFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// embeddingFlags are shared by the commands that call the embedding API.
func embeddingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "text-embedding-3-large",
			EnvVars: []string{"EMBEDDING_MODEL"},
		},
		&cli.IntFlag{
			Name:  "dimensions",
			Usage: "Embedding dimensionality (0 derives from embedding-model)",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "OpenAI API key",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "OpenAI-compatible API base URL",
			EnvVars: []string{"OPENAI_BASE_URL"},
		},
	}
}

// pipelineFlags are shared by every command that runs the batch pipeline.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of files launched per batch",
			Value: 10,
		},
		&cli.DurationFlag{
			Name:  "batch-pause",
			Usage: "Minimum gap between batch starts",
			Value: 1 * time.Second,
		},
		&cli.IntFlag{
			Name:  "pool-size",
			Usage: "Number of files processed concurrently",
			Value: 8,
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum attempts per file",
			Value: 3,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Delay between attempts",
			Value: 1 * time.Second,
		},
		&cli.DurationFlag{
			Name:  "call-timeout",
			Usage: "Timeout for one processing attempt (0 disables)",
			Value: 2 * time.Minute,
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
