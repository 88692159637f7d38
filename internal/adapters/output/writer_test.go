package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

func TestWriter_WriteResult_Stdout(t *testing.T) {
	tests := []struct {
		name       string
		result     *domain.TagResult
		wantOutput string
	}{
		{
			name: "composed tag",
			result: &domain.TagResult{
				Tag:        "api-gateway_2024-01-15_feature-user-login_00",
				CommitHash: "abc123",
				Branch:     "feature-user-login",
			},
			wantOutput: "api-gateway_2024-01-15_feature-user-login_00\n",
		},
		{
			name: "custom tag",
			result: &domain.TagResult{
				Tag:        "v1.2.3-rc1",
				CommitHash: "abc123",
				Branch:     "main",
			},
			wantOutput: "v1.2.3-rc1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var buf bytes.Buffer
			writer := NewWriterWithOutput(&buf, "")

			// Act
			err := writer.WriteResult(tt.result)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, buf.String())
		})
	}
}

func TestWriter_WriteResult_GitHubOutputFile(t *testing.T) {
	var buf bytes.Buffer
	outputFile := filepath.Join(t.TempDir(), "github_output")
	writer := NewWriterWithOutput(&buf, outputFile)

	result := &domain.TagResult{
		Tag:        "api-gateway_2024-01-15_main_00",
		CommitHash: "abc123def456",
		Branch:     "main",
	}

	err := writer.WriteResult(result)

	require.NoError(t, err)
	assert.Equal(t, "api-gateway_2024-01-15_main_00\n", buf.String())

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	want := "tag=api-gateway_2024-01-15_main_00\n" +
		"commit_hash=abc123def456\n" +
		"branch=main\n"
	assert.Equal(t, want, string(data))
}

func TestWriter_WriteResult_AppendsToExistingFile(t *testing.T) {
	var buf bytes.Buffer
	outputFile := filepath.Join(t.TempDir(), "github_output")
	require.NoError(t, os.WriteFile(outputFile, []byte("previous=value\n"), 0o644))

	writer := NewWriterWithOutput(&buf, outputFile)
	err := writer.WriteResult(&domain.TagResult{Tag: "t", CommitHash: "c", Branch: "b"})

	require.NoError(t, err)
	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "previous=value\ntag=t\ncommit_hash=c\nbranch=b\n", string(data))
}

func TestNewWriter_UsesStdout(t *testing.T) {
	writer := NewWriter()
	assert.NotNil(t, writer)
	assert.NotNil(t, writer.out)
}
