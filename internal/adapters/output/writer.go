// Package output provides adapters for writing application output.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

// EnvGitHubOutput is the path of the GitHub Actions step output file.
// When set, named outputs are appended there in addition to stdout.
const EnvGitHubOutput = "GITHUB_OUTPUT"

// Output names as consumed by downstream workflow steps.
const (
	OutputTag        = "tag"
	OutputCommitHash = "commit_hash"
	OutputBranch     = "branch"
)

// Writer writes the computed tag result to the configured destinations.
// The tag itself goes to stdout as a single line for piping; when a GitHub
// Actions output file is configured, the named outputs are appended to it.
type Writer struct {
	out        io.Writer
	outputFile string
}

// NewWriter creates a Writer that writes to stdout and to the file named by
// GITHUB_OUTPUT when that variable is set.
func NewWriter() *Writer {
	return &Writer{
		out:        os.Stdout,
		outputFile: os.Getenv(EnvGitHubOutput),
	}
}

// NewWriterWithOutput creates a Writer with a custom stdout destination and
// an explicit output file path (empty to disable). This is useful for testing.
func NewWriterWithOutput(out io.Writer, outputFile string) *Writer {
	return &Writer{out: out, outputFile: outputFile}
}

// WriteResult writes the tag to stdout and, when configured, appends the
// named outputs to the workflow output file.
func (w *Writer) WriteResult(result *domain.TagResult) error {
	if _, err := fmt.Fprintln(w.out, result.Tag); err != nil {
		return err
	}

	if w.outputFile == "" {
		return nil
	}
	return w.appendNamedOutputs(result)
}

// appendNamedOutputs appends key=value lines to the workflow output file.
func (w *Writer) appendNamedOutputs(result *domain.TagResult) error {
	f, err := os.OpenFile(w.outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	lines := []struct {
		name  string
		value string
	}{
		{OutputTag, result.Tag},
		{OutputCommitHash, result.CommitHash},
		{OutputBranch, result.Branch},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(f, "%s=%s\n", l.name, l.value); err != nil {
			return fmt.Errorf("failed to write output %s: %w", l.name, err)
		}
	}

	return nil
}
