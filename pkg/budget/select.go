package budget

// BudgetMessages returns a trimmed copy of messages whose estimated size
// stays within cfg.EffectiveBudget().
//
// Strategy:
//   - Pin up to the last keepLastNSystem system messages from anywhere
//     in the history.
//   - Walk the remaining messages from the end backwards, keeping each
//     one that still fits. The walk stops at the first message that does
//     not: recency takes strict priority, so no older message is ever
//     kept past the first rejection even if it would individually fit.
//   - If even the most recent message does not fit and
//     cfg.TruncateLastIfNeeded is set, its content is truncated to the
//     remaining allowance (possibly to nothing) and it is kept as the
//     single partially-included message.
//
// The input slice and its elements are never mutated. No input produces
// an error; a non-positive budget produces an empty transcript.
func BudgetMessages(messages []Message, cfg Config, keepLastNSystem int) []Message {
	maxInput := cfg.EffectiveBudget()

	var systemMsgs, conversational []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			systemMsgs = append(systemMsgs, m)
		} else {
			conversational = append(conversational, m)
		}
	}

	var pinned []Message
	if keepLastNSystem > 0 {
		start := len(systemMsgs) - keepLastNSystem
		if start < 0 {
			start = 0
		}
		pinned = systemMsgs[start:]
	}
	total := MessagesSize(pinned)

	var kept []Message
	for idx := len(conversational) - 1; idx >= 0; idx-- {
		m := conversational[idx]
		size := MessageSize(m)
		if total+size <= maxInput {
			kept = append(kept, m)
			total += size
			continue
		}
		// Boundary message: only the most recent one may be partially
		// included, and only when there is any budget at all.
		if idx == len(conversational)-1 && cfg.TruncateLastIfNeeded && m.Content != "" && maxInput > 0 {
			allowed := maxInput - total - runeLen(m.Role)
			m.Content = TruncateText(m.Content, allowed)
			kept = append(kept, m)
			total += MessageSize(m)
		}
		break
	}

	// The walk collected newest-first; restore chronological order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	// Re-validate pinned system messages against the same budget. The
	// first one that does not fully fit gets the same truncation
	// fallback, then the scan stops; later pinned messages are not
	// reconsidered.
	final := make([]Message, 0, len(pinned)+len(kept))
	finalSize := 0
	for _, m := range pinned {
		size := MessageSize(m)
		if finalSize+size <= maxInput {
			final = append(final, m)
			finalSize += size
			continue
		}
		if cfg.TruncateLastIfNeeded && m.Content != "" && maxInput > 0 {
			allowed := maxInput - finalSize - runeLen(m.Role)
			m.Content = TruncateText(m.Content, allowed)
			final = append(final, m)
			finalSize += MessageSize(m)
		}
		break
	}

	return append(final, kept...)
}
