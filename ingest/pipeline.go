package ingest

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"
)

// Defaults for the pipeline knobs. Batch size and pacing mirror what the
// upstream APIs tolerate without rate limiting.
const (
	DefaultExtension   = ".json"
	DefaultPoolSize    = 8
	DefaultBatchSize   = 10
	DefaultBatchPause  = time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = time.Second
	DefaultCallTimeout = 2 * time.Minute
)

// Config holds the pipeline tuning knobs.
type Config struct {
	// Extension selects input files during discovery.
	Extension string

	// PoolSize bounds how many files are in flight at once.
	PoolSize int

	// BatchSize is the number of files launched per batch. The pipeline
	// waits for a whole batch before starting the next.
	BatchSize int

	// BatchPause is the minimum gap between batch starts.
	BatchPause time.Duration

	// MaxRetries and RetryDelay drive the per-file fixed-delay retry.
	MaxRetries int
	RetryDelay time.Duration

	// CallTimeout bounds one processing attempt. A timed-out attempt is
	// retried like any other transient failure. Zero disables the bound.
	CallTimeout time.Duration

	// Dedup picks the behavior when listing ingested identities fails.
	Dedup DedupStrategy
}

// Report summarizes one pipeline run.
type Report struct {
	Found     int   // input files discovered
	Skipped   int   // already ingested, not processed
	Processed int64 // processed successfully
	Failed    int64 // failed after all retries
}

// Pipeline runs a FileProcessor over a directory of input files with
// bounded concurrency, paced batches and per-file retry.
type Pipeline struct {
	processor FileProcessor
	lister    IdentityLister
	pool      *ants.Pool
	config    Config
	progress  func(path string)
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size. Values below 1 are clamped to 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		p.config.PoolSize = size
		return nil
	}
}

// WithBatchSize sets how many files are launched per batch.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.config.BatchSize = size
		return nil
	}
}

// WithBatchPause sets the minimum gap between batch starts. Zero disables
// pacing.
func WithBatchPause(pause time.Duration) Option {
	return func(p *Pipeline) error {
		p.config.BatchPause = pause
		return nil
	}
}

// WithRetries configures the per-file retry.
func WithRetries(maxAttempts int, delay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.config.MaxRetries = maxAttempts
		p.config.RetryDelay = delay
		return nil
	}
}

// WithCallTimeout bounds a single processing attempt. Zero disables it.
func WithCallTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		p.config.CallTimeout = timeout
		return nil
	}
}

// WithExtension sets the input file extension matched during discovery.
func WithExtension(ext string) Option {
	return func(p *Pipeline) error {
		p.config.Extension = ext
		return nil
	}
}

// WithDedup enables filtering of already-ingested files against the given
// lister, with the given failure strategy.
func WithDedup(lister IdentityLister, strategy DedupStrategy) Option {
	return func(p *Pipeline) error {
		p.lister = lister
		p.config.Dedup = strategy
		return nil
	}
}

// WithProgress registers a callback invoked after each file finishes,
// successful or not. Must be safe for concurrent use.
func WithProgress(fn func(path string)) Option {
	return func(p *Pipeline) error {
		p.progress = fn
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline running the given processor.
func NewPipeline(processor FileProcessor, opts ...Option) (*Pipeline, error) {
	if processor == nil {
		return nil, ErrProcessorRequired
	}

	pool, err := ants.NewPool(DefaultPoolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		processor: processor,
		pool:      pool,
		config: Config{
			Extension:   DefaultExtension,
			PoolSize:    DefaultPoolSize,
			BatchSize:   DefaultBatchSize,
			BatchPause:  DefaultBatchPause,
			MaxRetries:  DefaultMaxRetries,
			RetryDelay:  DefaultRetryDelay,
			CallTimeout: DefaultCallTimeout,
		},
		logger: slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run discovers, filters and processes every input file under dir. A file
// failure is counted and logged, never fatal; Run only returns an error
// when the run as a whole cannot proceed (discovery failure, fail-closed
// dedup failure, context cancellation).
func (p *Pipeline) Run(ctx context.Context, dir string) (*Report, error) {
	files, err := Discover(dir, p.config.Extension)
	if err != nil {
		return nil, err
	}

	report := &Report{Found: len(files)}
	if len(files) == 0 {
		p.logger.Warn("no input files found", "dir", dir, "ext", p.config.Extension)
		return report, nil
	}

	if p.lister != nil {
		fresh, err := FilterIngested(ctx, files, p.lister, p.config.Dedup)
		if err != nil {
			return nil, err
		}
		report.Skipped = len(files) - len(fresh)
		files = fresh
	}

	p.logger.Info("starting run", "found", report.Found, "skipped", report.Skipped)

	var limiter *rate.Limiter
	if p.config.BatchPause > 0 {
		limiter = rate.NewLimiter(rate.Every(p.config.BatchPause), 1)
	}

	var processed, failed atomic.Int64
	batches := (len(files) + p.config.BatchSize - 1) / p.config.BatchSize

	for i := 0; i < len(files); i += p.config.BatchSize {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				report.Processed = processed.Load()
				report.Failed = failed.Load()
				return report, err
			}
		}

		batch := files[i:min(i+p.config.BatchSize, len(files))]

		var wg sync.WaitGroup
		for _, path := range batch {
			path := path // per-iteration copy; required while go.mod targets go < 1.22
			wg.Add(1)
			submitErr := p.pool.Submit(func() {
				defer wg.Done()
				if err := p.processFile(ctx, path); err != nil {
					failed.Add(1)
					p.logger.Error("failed to process file", "file", path, "err", err)
				} else {
					processed.Add(1)
				}
				if p.progress != nil {
					p.progress(path)
				}
			})
			if submitErr != nil {
				wg.Done()
				failed.Add(1)
				p.logger.Error("failed to submit file", "file", path, "err", submitErr)
			}
		}
		wg.Wait()

		p.logger.Info("processed batch", "batch", i/p.config.BatchSize+1, "batches", batches)
	}

	report.Processed = processed.Load()
	report.Failed = failed.Load()
	return report, nil
}

// processFile runs one file through the processor under the retry policy,
// bounding each attempt with the call timeout.
func (p *Pipeline) processFile(ctx context.Context, path string) error {
	return Retry(ctx, func() error {
		attemptCtx := ctx
		if p.config.CallTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, p.config.CallTimeout)
			defer cancel()
		}
		return p.processor.Process(attemptCtx, path)
	}, p.config.MaxRetries, p.config.RetryDelay)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
