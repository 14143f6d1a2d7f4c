package openai

import "errors"

var (
	// ErrNoTranslation is returned when the chat API responds without any
	// completion choices.
	ErrNoTranslation = errors.New("translation response contained no choices")
)
