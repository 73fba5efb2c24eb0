package budget

// MemoryPrefix labels the synthesized message produced by RollupHistory
// when the summarizer returns plain text.
const MemoryPrefix = "Conversation memory (summarized):"

// Summary is what a SummarizeFunc hands back: either a ready-made
// message or a plain text body to be wrapped into one. Use TextSummary
// or MessageSummary to construct it.
type Summary struct {
	msg    Message
	text   string
	isText bool
}

// TextSummary wraps plain summary text; RollupHistory turns it into a
// system-role message with MemoryPrefix.
func TextSummary(text string) Summary {
	return Summary{text: text, isText: true}
}

// MessageSummary wraps a ready-made summary message. A missing role
// defaults to system.
func MessageSummary(m Message) Summary {
	return Summary{msg: m}
}

// SummarizeFunc condenses a block of older messages. The package never
// calls it except through RollupHistory, performs no summarization of
// its own, and imposes no timeout: the function is treated as an opaque
// synchronous call. Implementations that can fail should carry their
// error through their own closure state and return a degraded summary.
type SummarizeFunc func(head []Message) Summary

// RollupHistory replaces all but the last keepLastN messages with a
// single compact memory message produced by summarize. When the history
// is already short enough it is returned unchanged (as a copy) and
// summarize is never invoked.
func RollupHistory(messages []Message, summarize SummarizeFunc, keepLastN int) []Message {
	if keepLastN < 0 {
		keepLastN = 0
	}
	if len(messages) <= keepLastN {
		return copyMessages(messages)
	}

	head := messages[:len(messages)-keepLastN]
	tail := messages[len(messages)-keepLastN:]

	summary := summarize(head)
	var memory Message
	if summary.isText {
		memory = Message{
			Role:    RoleSystem,
			Content: MemoryPrefix + "\n" + summary.text,
		}
	} else {
		memory = summary.msg
		if memory.Role == "" {
			memory.Role = RoleSystem
		}
	}

	out := make([]Message, 0, len(tail)+1)
	out = append(out, memory)
	return append(out, tail...)
}
