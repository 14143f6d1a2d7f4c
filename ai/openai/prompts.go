package openai

import "fmt"

// buildTranslatorPrompt returns the system instruction for the translation
// chat completion. Markdown structure must survive translation so the
// rendered document form stays intact.
func buildTranslatorPrompt(targetLanguage string) string {
	return fmt.Sprintf(
		"You are a professional translator. Translate the following markdown text to %s. "+
			"Maintain all markdown formatting in the translation.",
		targetLanguage)
}
