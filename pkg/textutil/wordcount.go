package textutil

import "strings"

// WordCount returns the number of whitespace-delimited tokens in text.
// Empty or whitespace-only text counts as zero. The result is what gets
// persisted next to document content, so it must stay in lockstep with the
// content it was derived from.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
