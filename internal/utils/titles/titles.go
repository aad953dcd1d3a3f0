// Package titles derives conversation titles from message text.
package titles

import (
	"strings"
)

const (
	maxWords  = 4
	maxLength = 50
)

// Derive builds a conversation title from the first words of a message.
// At most four whitespace-separated words are used; a result longer than
// 50 characters is cut to 47 and suffixed with "...".
func Derive(message string) string {
	words := strings.Fields(message)
	if len(words) > maxWords {
		words = words[:maxWords]
	}

	title := strings.Join(words, " ")
	if runes := []rune(title); len(runes) > maxLength {
		title = string(runes[:maxLength-3]) + "..."
	}
	return title
}
