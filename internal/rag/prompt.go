package rag

import "fmt"

// NoMatchAnswer is the canned reply used both when retrieval finds
// nothing and, verbatim via the prompt, when the model judges the
// context insufficient. Keep the two paths byte-identical.
const NoMatchAnswer = "I couldn't find anything about that in the document."

// systemPrompt is the generation contract: answer only from the numbered
// context, cite every claim with its source ordinal, and fall back to
// NoMatchAnswer verbatim when the context does not answer the question.
const systemPrompt = "You are a helpful assistant that answers questions using only the numbered context passages provided. " +
	"Every claim drawn from the context must carry a bracketed citation like [1] or [2], where the number matches the passage it came from. " +
	"Mention page numbers when the passage provides them. " +
	"If the context does not answer the question, reply exactly: \"" + NoMatchAnswer + "\""

// buildUserMessage combines the question with the assembled context.
func buildUserMessage(question, contextBlob string) string {
	return fmt.Sprintf("Question: %s\n\nContext:\n%s", question, contextBlob)
}
