// Package summarize provides ready-made budget.SummarizeFunc
// implementations for history rollup: deterministic heuristics for
// offline use and LLM-backed condensers for real summaries. The budget
// package only defines the hook; everything that can actually fail
// lives here.
package summarize

import (
	"fmt"
	"strings"

	"github.com/convobudget/convobudget/pkg/budget"
)

const summaryInstruction = "Condense the following conversation into a short factual summary. " +
	"Keep decisions, names, numbers and open questions. Do not invent content."

// renderTranscript flattens messages into the plain "role: content" form
// the condenser prompts are built from.
func renderTranscript(msgs []budget.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		role := m.Role
		if role == "" {
			role = "unknown"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// fallbackSummary is the degraded result used when a backend fails: the
// rollup still happens, the reader just learns that content was dropped.
func fallbackSummary(head []budget.Message) budget.Summary {
	return budget.TextSummary(fmt.Sprintf("[summary unavailable: %d older messages dropped]", len(head)))
}

// Headline returns a deterministic SummarizeFunc that needs no network:
// it keeps the first line of each older message and truncates the result
// to maxChars. Useful for tests and for callers that only need a cheap
// reminder of what was elided.
func Headline(maxChars int) budget.SummarizeFunc {
	return func(head []budget.Message) budget.Summary {
		var lines []string
		for _, m := range head {
			line := m.Content
			if idx := strings.IndexByte(line, '\n'); idx >= 0 {
				line = line[:idx]
			}
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
		text := strings.Join(lines, "; ")
		return budget.TextSummary(budget.TruncateText(text, maxChars))
	}
}
