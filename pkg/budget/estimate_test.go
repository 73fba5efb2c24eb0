package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageSize(t *testing.T) {
	assert.Equal(t, 0, MessageSize(Message{}))
	assert.Equal(t, 4, MessageSize(Message{Role: "user"}))
	assert.Equal(t, 11, MessageSize(Message{Role: "user", Content: "hello.."}))
	// Rune counting: each multi-byte character costs one.
	assert.Equal(t, 6, MessageSize(Message{Role: "ü", Content: "héllö"}))
}

func TestMessagesSize(t *testing.T) {
	assert.Equal(t, 0, MessagesSize(nil))
	msgs := []Message{
		{Role: "system", Content: "S"},
		{Role: "user", Content: "hi"},
	}
	assert.Equal(t, 7+6, MessagesSize(msgs))
}
