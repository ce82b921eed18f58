// Package prompt holds the fixed summarization prompt shared by every provider.
package prompt

import "fmt"

const System = "You are an AI assistant that helps summarize meeting transcripts based on custom instructions. " +
	"Provide clear, structured summaries that follow the user's specific requirements."

// Sampling parameters: low but nonzero randomness, bounded output.
const (
	Temperature = 0.3
	MaxTokens   = 2048
)

// User renders the user turn for a transcript and instruction.
func User(instruction, transcript string) string {
	return fmt.Sprintf("Please summarize the following meeting transcript based on this instruction: \"%s\"\n\nTranscript:\n%s",
		instruction, transcript)
}
