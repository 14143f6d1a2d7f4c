package chunker

import (
	"sync/atomic"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding used for all token counting. Matches the tokenizer of the
// OpenAI embedding models.
const Encoding = "cl100k_base"

// EncodeFunc counts the tokens in a text. Implementations must be
// deterministic and safe for concurrent use.
type EncodeFunc func(text string) int

// Counter counts tokens and accumulates run totals. Count is a pure
// function; the totals are updated atomically so concurrent pipeline tasks
// never lose increments.
type Counter struct {
	encode      EncodeFunc
	totalTokens atomic.Int64
	totalChunks atomic.Int64
}

// NewCounter creates a counter backed by the cl100k_base tokenizer.
func NewCounter() (*Counter, error) {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, err
	}
	return &Counter{
		encode: func(text string) int {
			return len(enc.Encode(text, nil, nil))
		},
	}, nil
}

// NewCounterWithEncoder creates a counter using a custom encoding function.
// Used by tests to make token counts predictable.
func NewCounterWithEncoder(fn EncodeFunc) *Counter {
	return &Counter{encode: fn}
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	return c.encode(text)
}

// Record adds one chunk's token count to the run totals.
func (c *Counter) Record(tokens int) {
	c.totalTokens.Add(int64(tokens))
	c.totalChunks.Add(1)
}

// TotalTokens returns the number of tokens recorded so far.
func (c *Counter) TotalTokens() int64 {
	return c.totalTokens.Load()
}

// TotalChunks returns the number of chunks recorded so far.
func (c *Counter) TotalChunks() int64 {
	return c.totalChunks.Load()
}
