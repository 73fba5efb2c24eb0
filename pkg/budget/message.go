// Package budget trims chat transcripts to fit a provider's input-size
// limit, measured in characters. It keeps pinned system instructions and
// the most recent turns, truncating the boundary message when nothing
// else fits. Every function degrades instead of failing: a hostile or
// nonsensical input produces an empty or minimal result, never an error.
package budget

import "unicode/utf8"

// RoleSystem is the one role the selector treats specially: system
// messages are eligible for pinning, everything else is trimmed by
// recency.
const RoleSystem = "system"

// Message is a single chat turn. The zero value is a valid (empty)
// message; a missing role or content behaves as an empty string.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// copyMessages returns an independent copy of msgs so callers never see
// their input mutated.
func copyMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
