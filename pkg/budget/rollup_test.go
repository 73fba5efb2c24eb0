package budget

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupHistory_ShortHistoryUnchanged(t *testing.T) {
	msgs := []Message{
		{Role: "user", Content: "a"},
		{Role: "assistant", Content: "b"},
	}

	called := false
	got := RollupHistory(msgs, func([]Message) Summary {
		called = true
		return TextSummary("never used")
	}, 6)

	assert.False(t, called, "summarizer must not run when history fits")
	assert.Equal(t, msgs, got)

	// The result is a copy, not an alias of the input.
	got[0].Content = "changed"
	assert.Equal(t, "a", msgs[0].Content)
}

func TestRollupHistory_TextSummary(t *testing.T) {
	var msgs []Message
	for i := 0; i < 10; i++ {
		msgs = append(msgs, Message{Role: "user", Content: fmt.Sprintf("turn %d", i)})
	}

	var sawHead []Message
	got := RollupHistory(msgs, func(head []Message) Summary {
		sawHead = head
		return TextSummary("the early turns")
	}, 3)

	// The summarizer sees everything except the kept tail.
	require.Len(t, sawHead, 7)
	assert.Equal(t, "turn 0", sawHead[0].Content)
	assert.Equal(t, "turn 6", sawHead[6].Content)

	require.Len(t, got, 4)
	assert.Equal(t, RoleSystem, got[0].Role)
	assert.Equal(t, MemoryPrefix+"\nthe early turns", got[0].Content)
	assert.Equal(t, "turn 7", got[1].Content)
	assert.Equal(t, "turn 9", got[3].Content)
}

func TestRollupHistory_MessageSummary(t *testing.T) {
	msgs := []Message{
		{Role: "user", Content: "a"},
		{Role: "user", Content: "b"},
		{Role: "user", Content: "c"},
	}

	got := RollupHistory(msgs, func([]Message) Summary {
		return MessageSummary(Message{Role: "assistant", Content: "earlier: a, b"})
	}, 1)

	require.Len(t, got, 2)
	assert.Equal(t, Message{Role: "assistant", Content: "earlier: a, b"}, got[0])
	assert.Equal(t, "c", got[1].Content)
}

func TestRollupHistory_MessageSummaryDefaultsRole(t *testing.T) {
	msgs := []Message{
		{Role: "user", Content: "a"},
		{Role: "user", Content: "b"},
	}

	got := RollupHistory(msgs, func([]Message) Summary {
		return MessageSummary(Message{Content: "summary with no role"})
	}, 1)

	require.Len(t, got, 2)
	assert.Equal(t, RoleSystem, got[0].Role)
}

func TestRollupHistory_ThenBudget(t *testing.T) {
	// Rollup before budgeting: the condensed history fits where the
	// raw one would have been trimmed hard.
	var msgs []Message
	for i := 0; i < 20; i++ {
		msgs = append(msgs, Message{Role: "user", Content: strings.Repeat("x", 50)})
	}

	rolled := RollupHistory(msgs, func(head []Message) Summary {
		return TextSummary(fmt.Sprintf("%d older turns elided", len(head)))
	}, 2)

	cfg := Config{CharLimit: 200, SafetyRatio: 1.0, TruncateLastIfNeeded: true}
	got := BudgetMessages(rolled, cfg, 1)

	require.Len(t, got, 3)
	assert.Contains(t, got[0].Content, "18 older turns elided")
	assert.LessOrEqual(t, MessagesSize(got), cfg.EffectiveBudget())
}
