package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser(t *testing.T) {
	got := User("List action items", "Alice and Bob discussed budget.")

	assert.Equal(t,
		"Please summarize the following meeting transcript based on this instruction: \"List action items\"\n\nTranscript:\nAlice and Bob discussed budget.",
		got)
}

func TestUser_KeepsTranscriptVerbatim(t *testing.T) {
	transcript := "line 1\n\n\"quoted\" line 2"

	assert.True(t, strings.HasSuffix(User("x", transcript), transcript))
}
