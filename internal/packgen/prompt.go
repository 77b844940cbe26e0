package packgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write bite-sized trivia for a daily facts app.

Rules:
- Every fact must be true, surprising and checkable. Name a reputable source.
- Keep fact bodies to two or three plain sentences.
- Questions must be answerable from general knowledge or from the facts you wrote.
- multiple_choice and image_choice questions have exactly 4 options with exactly one correct.
- image_choice questions show a single emoji as the picture and ask what it depicts.
- true_false questions are a single statement, roughly half true and half false.
- fill_blank prompts contain "___" and the answer is a single word.
- Do not repeat anything from the "already in the library" list.`

func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	if input.Category != "" {
		fmt.Fprintf(&b, "Category label: %s\n", input.Category)
	}
	fmt.Fprintf(&b, "Facts to write: %d\n", input.Facts)
	fmt.Fprintf(&b, "Questions to write: %d\n", input.Questions)

	kinds := make([]string, len(input.Kinds))
	for i, k := range input.Kinds {
		kinds[i] = string(k)
	}
	fmt.Fprintf(&b, "Question kinds: %s\n", strings.Join(kinds, ", "))

	b.WriteString("\nAlready in the library:\n")
	b.WriteString(buildDedup(input.Existing, cfg.MaxPriorItems))

	return b.String()
}

// buildDedup lists the most recent existing items, or "None".
func buildDedup(existing []string, max int) string {
	if len(existing) == 0 {
		return "None"
	}
	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for i, s := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
