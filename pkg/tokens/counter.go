// Package tokens provides approximate token accounting for transcripts.
// The budget package measures characters on purpose; this package exists
// so callers can compare the character estimate against a real tokenizer
// and calibrate their safety ratio.
package tokens

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/convobudget/convobudget/pkg/budget"
)

// tokensPerMessage is the per-message framing overhead chat providers
// charge on top of the encoded text.
const tokensPerMessage = 3

// replyPrimer covers the tokens priming the assistant reply.
const replyPrimer = 3

// Counter wraps a tiktoken encoder for approximate token counting.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// NewCounter creates a Counter for the named model, falling back to the
// cl100k_base encoding when the model is unknown or empty. Construction
// fails only when no encoding can be loaded at all.
func NewCounter(model string) (*Counter, error) {
	if model != "" {
		if enc, err := tiktoken.EncodingForModel(model); err == nil {
			return &Counter{enc: enc}, nil
		}
	}
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("get encoding: %w", err)
	}
	return &Counter{enc: enc}, nil
}

// Count returns the approximate number of tokens in s.
func (c *Counter) Count(s string) int {
	return len(c.enc.Encode(s, nil, nil))
}

// CountMessages returns the approximate token cost of a transcript,
// including per-message framing overhead and the reply primer.
func (c *Counter) CountMessages(msgs []budget.Message) int {
	if len(msgs) == 0 {
		return 0
	}

	total := 0
	for _, m := range msgs {
		total += tokensPerMessage
		if m.Role != "" {
			total += c.Count(m.Role)
		}
		if m.Content != "" {
			total += c.Count(m.Content)
		}
	}
	return total + replyPrimer
}
