package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Write the position overview.", []QA{
		{Question: "Role title?", Answer: "Engineer"},
		{Question: "Location?", Answer: "Tokyo"},
	})

	expected := "Write the position overview.\n\n【ヒアリング内容】\n" +
		"質問: Role title?\n回答: Engineer\n\n" +
		"質問: Location?\n回答: Tokyo\n\n"
	assert.Equal(t, expected, prompt)
}

func TestBuildPromptNoAnswers(t *testing.T) {
	prompt := BuildPrompt("Write the position overview.", nil)

	assert.Equal(t, "Write the position overview.\n\n【ヒアリング内容】\n", prompt)
}

func TestBuildPromptPreservesAnswerOrder(t *testing.T) {
	answers := []QA{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
	}
	prompt := BuildPrompt("tmpl", answers)

	assert.Contains(t, prompt, "質問: q1\n回答: a1\n\n質問: q2\n回答: a2\n\n質問: q3\n回答: a3\n\n")
}
