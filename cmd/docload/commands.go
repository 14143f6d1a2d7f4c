package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/tofes-ai/docload/ai"
	"github.com/tofes-ai/docload/ai/openai"
	"github.com/tofes-ai/docload/chunker"
	"github.com/tofes-ai/docload/ingest"
	"github.com/tofes-ai/docload/store/pgvector"
)

func chunkCommand(c *cli.Context) error {
	ctx := context.Background()

	counter, err := chunker.NewCounter()
	if err != nil {
		return fmt.Errorf("failed to load tokenizer: %w", err)
	}

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	fallback := ai.NewFallbackEmbedder(embedder, aiConfig.Dimensions)

	proc := ingest.NewChunkProcessor(counter, fallback,
		c.String("output"), c.String("markdown"), c.Int("chunk-size"))

	report, err := runPipeline(ctx, c, proc, c.String("input"), "Chunking documents...")
	if err != nil {
		return err
	}

	printSummary(report)
	if chunks := counter.TotalChunks(); chunks > 0 {
		fmt.Printf("  Total chunks:   %d\n", chunks)
		fmt.Printf("  Total tokens:   %d\n", counter.TotalTokens())
		fmt.Printf("  Average tokens: %.2f\n", float64(counter.TotalTokens())/float64(chunks))
	}
	return nil
}

func translateCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := aiConfigFromFlags(c,
		ai.WithChatModel(c.String("chat-model")),
		ai.WithTargetLanguage(c.String("language")),
	)
	if err != nil {
		return err
	}

	translator, err := openai.NewTranslator(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	proc := ingest.NewTranslateProcessor(translator, embedder,
		c.String("output"), c.String("markdown"))

	report, err := runPipeline(ctx, c, proc, c.String("input"), "Translating documents...")
	if err != nil {
		return err
	}

	printSummary(report)
	return nil
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	connString := c.String("database-url")
	if connString == "" {
		return fmt.Errorf("database-url is required")
	}

	dimensions := c.Int("dimensions")
	if dimensions == 0 {
		dimensions = ai.DimensionsFor(c.String("embedding-model"))
	}

	st, err := pgvector.New(ctx, pgvector.Config{
		ConnString: connString,
		TableName:  c.String("table"),
		Dimensions: dimensions,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	strategy := ingest.FailOpen
	switch c.String("dedup") {
	case "fail-open":
	case "fail-closed":
		strategy = ingest.FailClosed
	default:
		return fmt.Errorf("invalid dedup strategy %q: must be fail-open or fail-closed", c.String("dedup"))
	}

	proc := ingest.NewLoadProcessor(st)

	report, err := runPipeline(ctx, c, proc, c.String("docs"), "Loading documents...",
		ingest.WithDedup(st, strategy))
	if err != nil {
		return err
	}

	printSummary(report)
	return nil
}

// aiConfigFromFlags builds and validates the AI client configuration from
// the shared embedding flags.
func aiConfigFromFlags(c *cli.Context, extra ...ai.ConfigOption) (*ai.Config, error) {
	opts := []ai.ConfigOption{
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithBaseURL(c.String("base-url")),
	}
	if dims := c.Int("dimensions"); dims > 0 {
		opts = append(opts, ai.WithDimensions(dims))
	}
	opts = append(opts, extra...)

	config := ai.NewConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

// runPipeline wires the shared pipeline flags, attaches a progress bar and
// runs the processor over dir.
func runPipeline(ctx context.Context, c *cli.Context, proc ingest.FileProcessor, dir, description string, extra ...ingest.Option) (*ingest.Report, error) {
	// Count up front so the bar has a total. The pipeline re-discovers; the
	// directory is not expected to change mid-run.
	files, err := ingest.Discover(dir, ".json")
	if err != nil {
		return nil, err
	}
	bar := getProgressBar(len(files), description)

	opts := []ingest.Option{
		ingest.WithBatchSize(c.Int("batch-size")),
		ingest.WithBatchPause(c.Duration("batch-pause")),
		ingest.WithPoolSize(c.Int("pool-size")),
		ingest.WithRetries(c.Int("max-retries"), c.Duration("retry-delay")),
		ingest.WithCallTimeout(c.Duration("call-timeout")),
		ingest.WithProgress(func(path string) {
			bar.Add(1)
		}),
	}
	opts = append(opts, extra...)

	p, err := ingest.NewPipeline(proc, opts...)
	if err != nil {
		return nil, err
	}
	defer p.Release()

	report, err := p.Run(ctx, dir)
	bar.Finish()
	if err != nil {
		return nil, err
	}
	return report, nil
}

func printSummary(report *ingest.Report) {
	fmt.Println()
	color.Green("✓ Run complete")
	fmt.Printf("  Found:          %d\n", report.Found)
	if report.Skipped > 0 {
		fmt.Printf("  Already stored: %d\n", report.Skipped)
	}
	fmt.Printf("  Processed:      %d\n", report.Processed)
	if report.Failed > 0 {
		color.Red("  Failed:         %d", report.Failed)
	}
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}
