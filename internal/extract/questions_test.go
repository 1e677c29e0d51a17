package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionItems(t *testing.T) {
	text := "Here are your questions:\n" +
		"1. What is a goroutine?\n" +
		"2) How does a channel differ\n" +
		"   from a mutex?\n" +
		"\n" +
		"3. Describe a time you disagreed with a teammate.\n" +
		"Good luck!"

	assert.Equal(t, []string{
		"What is a goroutine?",
		"How does a channel differ from a mutex?",
		"Describe a time you disagreed with a teammate.",
	}, QuestionItems(text))
}

func TestQuestionItems_NoNumberedLines(t *testing.T) {
	assert.Empty(t, QuestionItems("Just prose, no list."))
	assert.NotNil(t, QuestionItems(""))
}

func TestStripNumberedPrefix(t *testing.T) {
	body, ok := stripNumberedPrefix("12. Explain indexes")
	assert.True(t, ok)
	assert.Equal(t, "Explain indexes", body)

	_, ok = stripNumberedPrefix("1.5 million rows")
	assert.False(t, ok)
}
