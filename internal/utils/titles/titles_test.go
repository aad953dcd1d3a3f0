package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{
			name:     "short message used as is",
			message:  "Hello there",
			expected: "Hello there",
		},
		{
			name:     "caps at four words",
			message:  "tell me about the weather in Paris today",
			expected: "tell me about the",
		},
		{
			name:     "collapses whitespace",
			message:  "  what\tis   going\non  ",
			expected: "what is going on",
		},
		{
			name:     "long words are truncated with ellipsis",
			message:  "supercalifragilisticexpialidocious antidisestablishmentarianism floccinaucinihilipilification",
			expected: "supercalifragilisticexpialidocious antidisestab...",
		},
		{
			name:     "empty message",
			message:  "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Derive(tt.message))
		})
	}
}

func TestDeriveNeverExceedsLimit(t *testing.T) {
	messages := []string{
		"short",
		"exactly the right size for a title maybe",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa bbbb cccc dddd",
	}
	for _, message := range messages {
		assert.LessOrEqual(t, len(Derive(message)), 50)
	}
}
