// Package ai defines the interfaces for the external AI services the
// pipeline consumes (text embedding and translation) and the configuration
// shared by their implementations. The openai subpackage implements both
// against OpenAI-compatible APIs; the mock subpackage provides
// deterministic test doubles.
package ai
