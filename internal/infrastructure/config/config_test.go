package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

// clearInputEnv unsets every bound variable so tests start from defaults.
func clearInputEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envBindings {
		for _, env := range envs {
			t.Setenv(env, "")
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearInputEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTagFormat, cfg.Request.Format)
	assert.Equal(t, domain.DefaultMaxLength, cfg.Request.MaxLength)
	assert.True(t, cfg.Request.IncludeCounter)
	assert.Equal(t, domain.DefaultBranchSeparator, cfg.Request.BranchSeparator)
	assert.Empty(t, cfg.Request.ServiceName)
	assert.Empty(t, cfg.Request.CustomTag)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogAppName, cfg.LogAppName)
}

func TestLoad_ActionInputs(t *testing.T) {
	clearInputEnv(t)
	t.Setenv("INPUT_SERVICE_NAME", "api-gateway")
	t.Setenv("INPUT_TAG_FORMAT", "branch_date_counter")
	t.Setenv("INPUT_MAX_LENGTH", "40")
	t.Setenv("INPUT_INCLUDE_COUNTER", "false")
	t.Setenv("INPUT_BRANCH_SEPARATOR", "_")
	t.Setenv("INPUT_BRANCH_REF", "refs/heads/feature/login")
	t.Setenv("INPUT_PULL_REQUEST_REF", "feature/pr-head")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "api-gateway", cfg.Request.ServiceName)
	assert.Equal(t, domain.FormatBranchDateCounter, cfg.Request.Format)
	assert.Equal(t, 40, cfg.Request.MaxLength)
	assert.False(t, cfg.Request.IncludeCounter)
	assert.Equal(t, "_", cfg.Request.BranchSeparator)
	assert.Equal(t, "refs/heads/feature/login", cfg.Request.BranchRef)
	assert.Equal(t, "feature/pr-head", cfg.Request.PullRequestRef)
}

func TestLoad_WorkflowFallbacks(t *testing.T) {
	clearInputEnv(t)
	t.Setenv("GITHUB_REF", "refs/heads/main")
	t.Setenv("GITHUB_HEAD_REF", "feature/pr-head")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "refs/heads/main", cfg.Request.BranchRef)
	assert.Equal(t, "feature/pr-head", cfg.Request.PullRequestRef)
}

func TestLoad_InputTakesPrecedenceOverFallback(t *testing.T) {
	clearInputEnv(t)
	t.Setenv("INPUT_BRANCH_REF", "refs/heads/override")
	t.Setenv("GITHUB_REF", "refs/heads/fallback")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "refs/heads/override", cfg.Request.BranchRef)
}

func TestLoad_CustomTag(t *testing.T) {
	clearInputEnv(t)
	t.Setenv("INPUT_CUSTOM_TAG", "v1.2.3-rc1")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "v1.2.3-rc1", cfg.Request.CustomTag)
}

func TestLoad_LogSettings(t *testing.T) {
	clearInputEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_APP_NAME", "tagger")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "tagger", cfg.LogAppName)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "unknown tag format",
			env:     map[string]string{"INPUT_TAG_FORMAT": "date-service-branch"},
			wantErr: domain.ErrUnknownTagFormat,
		},
		{
			name:    "non-positive max length",
			env:     map[string]string{"INPUT_MAX_LENGTH": "0"},
			wantErr: domain.ErrInvalidMaxLength,
		},
		{
			name:    "negative max length",
			env:     map[string]string{"INPUT_MAX_LENGTH": "-5"},
			wantErr: domain.ErrInvalidMaxLength,
		},
		{
			name:    "multi-character separator",
			env:     map[string]string{"INPUT_BRANCH_SEPARATOR": "--"},
			wantErr: domain.ErrInvalidSeparator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearInputEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
