package transcript

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convobudget/convobudget/pkg/budget"
)

func TestLoad_JSON(t *testing.T) {
	input := `[{"role":"system","content":"S"},{"role":"user","content":"hi"}]`

	msgs, err := Load(strings.NewReader(input), FormatAuto)
	require.NoError(t, err)

	require.Len(t, msgs, 2)
	assert.Equal(t, budget.Message{Role: "system", Content: "S"}, msgs[0])
	assert.Equal(t, budget.Message{Role: "user", Content: "hi"}, msgs[1])
}

func TestLoad_YAML(t *testing.T) {
	input := "- role: user\n  content: hello\n- role: assistant\n  content: hey\n"

	msgs, err := Load(strings.NewReader(input), FormatAuto)
	require.NoError(t, err)

	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, "assistant", msgs[1].Role)
}

func TestLoad_MissingFieldsBecomeEmpty(t *testing.T) {
	msgs, err := Load(strings.NewReader(`[{"role":"user"},{"content":"orphan"}]`), FormatJSON)
	require.NoError(t, err)

	require.Len(t, msgs, 2)
	assert.Equal(t, budget.Message{Role: "user"}, msgs[0])
	assert.Equal(t, budget.Message{Content: "orphan"}, msgs[1])
}

func TestLoad_MalformedInput(t *testing.T) {
	_, err := Load(strings.NewReader(`[{"role":`), FormatJSON)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	msgs := []budget.Message{
		{Role: "system", Content: "S"},
		{Role: "user", Content: "multi\nline"},
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, Save(&buf, msgs, format))

		got, err := Load(&buf, FormatAuto)
		require.NoError(t, err)
		assert.Equal(t, msgs, got)
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"json": FormatJSON,
		"YAML": FormatYAML,
		"yml":  FormatYAML,
		"auto": FormatAuto,
		"":     FormatAuto,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("toml")
	assert.Error(t, err)
}
