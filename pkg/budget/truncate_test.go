package budget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     string
	}{
		{"zero allowance", "hello", 0, ""},
		{"negative allowance", "hello", -5, ""},
		{"already fits", "hello", 5, "hello"},
		{"fits with room to spare", "hi", 10, "hi"},
		{"truncated with marker", "HELLOWORLD", 7, "HELLO…"},
		{"marker barely fits", "abc", 2, "a…"},
		{"no room for marker plus content", "abc", 1, "a"},
		{"empty text", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateText(tt.text, tt.maxChars))
		})
	}
}

func TestTruncateText_CountsRunes(t *testing.T) {
	// Multi-byte characters count as one each.
	got := TruncateText("héllö wörld", 6)
	assert.Equal(t, "héllö…", got)
	assert.Equal(t, 6, runeLen(got))
}

func TestTruncateTextWith_CustomMarker(t *testing.T) {
	assert.Equal(t, "HELL...", TruncateTextWith("HELLOWORLD", 7, "..."))
	// Marker longer than the allowance: hard cut, no marker.
	assert.Equal(t, "HEL", TruncateTextWith("HELLOWORLD", 3, "[...]"))
}

func TestTruncateText_Idempotent(t *testing.T) {
	texts := []string{"", "a", "short", strings.Repeat("x", 100), "héllö wörld"}
	for _, text := range texts {
		for k := 0; k <= 12; k++ {
			once := TruncateText(text, k)
			assert.Equal(t, once, TruncateText(once, k), "text=%q k=%d", text, k)
		}
	}
}

func TestTruncateText_LengthBounds(t *testing.T) {
	texts := []string{"", "abc", strings.Repeat("y", 50), "…………"}
	for _, text := range texts {
		for k := -1; k <= 55; k++ {
			got := TruncateText(text, k)
			if k < 0 {
				assert.Empty(t, got)
				continue
			}
			assert.LessOrEqual(t, runeLen(got), k, "text=%q k=%d", text, k)
			assert.LessOrEqual(t, runeLen(got), runeLen(text), "text=%q k=%d", text, k)
		}
	}
}

func TestBudgetDocument(t *testing.T) {
	cfg := Config{CharLimit: 7, SafetyRatio: 1.0}
	assert.Equal(t, "HELLO…", BudgetDocument("HELLOWORLD", cfg))

	// A document already within budget passes through untouched.
	assert.Equal(t, "short", BudgetDocument("short", cfg))

	// Non-positive budget degrades to an empty document.
	assert.Equal(t, "", BudgetDocument("anything", Config{CharLimit: 0, SafetyRatio: 1.0}))
}

func TestChunkText(t *testing.T) {
	assert.Equal(t, []string{"ab", "cd", "e"}, ChunkText("abcde", 2))
	assert.Equal(t, []string{"abcde"}, ChunkText("abcde", 10))
	assert.Nil(t, ChunkText("", 4))
	// A chunk size below 1 is clamped to 1.
	assert.Equal(t, []string{"a", "b"}, ChunkText("ab", 0))
}
