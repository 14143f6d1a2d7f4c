// Package chunker splits long text into token-budgeted chunks.
//
// Counting uses the cl100k_base byte-pair encoding so budgets line up with
// what the embedding API actually sees. Splitting is sentence-granular with
// a word-level fallback for single sentences that exceed the budget on
// their own.
package chunker
