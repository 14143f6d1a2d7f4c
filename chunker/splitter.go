package chunker

import (
	"log/slog"
	"strings"
)

// DefaultChunkSize is the default token budget per chunk.
const DefaultChunkSize = 1000

// Splitter splits text into chunks whose token count stays within a budget.
type Splitter struct {
	counter *Counter
	logger  *slog.Logger
}

// NewSplitter creates a splitter that counts tokens with the given counter.
func NewSplitter(counter *Counter) *Splitter {
	return &Splitter{
		counter: counter,
		logger:  slog.Default().With("component", "chunker"),
	}
}

// Split splits text into chunks of at most chunkSize tokens.
//
// Sentences are delimited by the literal ". " after newlines are folded to
// spaces. The heuristic misfires on abbreviations, decimal numbers and
// quoted periods; this is accepted behavior, since downstream token budgets
// were tuned against it. Sentences are accumulated greedily; a single
// sentence that alone exceeds the budget falls back to word-level
// accumulation. Empty input yields no chunks.
//
// The budget is best-effort: sub-word tokenizer behavior can still push a
// word-fallback chunk slightly over, which is logged as a warning rather
// than treated as an error.
func (s *Splitter) Split(text string, chunkSize int) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	sentences := strings.Split(strings.ReplaceAll(text, "\n", " "), ". ")

	var chunks []string
	var current []string
	currentTokens := 0

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		// Restore the period the split consumed. The final fragment keeps
		// its own terminal period, so joining chunks reconstructs the
		// original text.
		if !strings.HasSuffix(sentence, ".") {
			sentence += "."
		}
		sentenceTokens := s.counter.Count(sentence)

		// A single oversized sentence is split into words instead.
		if sentenceTokens > chunkSize {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, " "))
				current = nil
				currentTokens = 0
			}
			chunks = append(chunks, s.splitWords(sentence, chunkSize)...)
			continue
		}

		if currentTokens+sentenceTokens > chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{sentence}
			currentTokens = sentenceTokens
		} else {
			current = append(current, sentence)
			currentTokens += sentenceTokens
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	for i, chunk := range chunks {
		if tokens := s.counter.Count(chunk); tokens > chunkSize {
			s.logger.Warn("chunk still exceeds token budget after splitting",
				"chunk", i, "tokens", tokens, "budget", chunkSize)
		}
	}

	return chunks
}

// splitWords accumulates words greedily under the same budget policy.
func (s *Splitter) splitWords(sentence string, chunkSize int) []string {
	var chunks []string
	var current []string
	currentTokens := 0

	for _, word := range strings.Fields(sentence) {
		wordTokens := s.counter.Count(word + " ")
		if currentTokens+wordTokens > chunkSize {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, " "))
			}
			current = []string{word}
			currentTokens = wordTokens
		} else {
			current = append(current, word)
			currentTokens += wordTokens
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
