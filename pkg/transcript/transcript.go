// Package transcript reads and writes chat transcripts as JSON or YAML
// lists of role/content pairs, the boundary format the convobudget CLI
// speaks.
package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/convobudget/convobudget/pkg/budget"
)

// Format identifies a transcript encoding.
type Format int

const (
	// FormatAuto sniffs the encoding from the payload.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// ParseFormat maps a user-facing format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown transcript format %q (want json, yaml or auto)", name)
	}
}

// Load decodes a transcript from r. Messages with missing role or
// content fields decode to empty strings; only malformed syntax is an
// error.
func Load(r io.Reader, format Format) ([]budget.Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	if format == FormatAuto {
		format = sniff(data)
	}

	var msgs []budget.Message
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("decoding JSON transcript: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("decoding YAML transcript: %w", err)
		}
	}
	return msgs, nil
}

// Save encodes msgs to w. FormatAuto writes JSON.
func Save(w io.Writer, msgs []budget.Message, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(msgs); err != nil {
			return fmt.Errorf("encoding YAML transcript: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(msgs); err != nil {
			return fmt.Errorf("encoding JSON transcript: %w", err)
		}
		return nil
	}
}

// sniff guesses the encoding: a payload whose first non-space byte is
// '[' or '{' is JSON, anything else YAML.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatYAML
}
