package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/convobudget/convobudget/pkg/budget"
	"github.com/convobudget/convobudget/pkg/transcript"
)

// hasStdinInput checks if data is available from stdin (pipe or redirect)
func hasStdinInput() bool {
	return !isatty.IsTerminal(os.Stdin.Fd())
}

// openInput returns a reader for the optional file argument, falling
// back to the command's stdin when data is piped in.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) > 0 {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", args[0], err)
		}
		return file, nil
	}
	if cmd.InOrStdin() != os.Stdin || hasStdinInput() {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return nil, errors.New("no input: pass a file argument or pipe data on stdin")
}

// loadTranscript reads the transcript from the file argument or stdin
// using the configured format.
func loadTranscript(cmd *cobra.Command, args []string) ([]budget.Message, transcript.Format, error) {
	format, err := transcript.ParseFormat(formatName)
	if err != nil {
		return nil, format, err
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return nil, format, err
	}
	defer in.Close()

	msgs, err := transcript.Load(in, format)
	return msgs, format, err
}

// readDocument reads raw text (not a transcript) from the file argument
// or stdin.
func readDocument(cmd *cobra.Command, args []string) (string, error) {
	in, err := openInput(cmd, args)
	if err != nil {
		return "", err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
