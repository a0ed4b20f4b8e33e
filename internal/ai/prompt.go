package ai

import (
	"fmt"
	"strings"
)

// QA is one question/answer pair collected during a hearing session.
type QA struct {
	Question string
	Answer   string
}

// BuildPrompt merges a section's prompt template with the hearing answers.
// The template text comes first, verbatim (no placeholder substitution),
// followed by the hearing block with one blank line between pairs.
func BuildPrompt(promptTemplate string, answers []QA) string {
	var b strings.Builder
	b.WriteString(promptTemplate)
	b.WriteString("\n\n【ヒアリング内容】\n")
	for _, qa := range answers {
		fmt.Fprintf(&b, "質問: %s\n回答: %s\n\n", qa.Question, qa.Answer)
	}
	return b.String()
}
