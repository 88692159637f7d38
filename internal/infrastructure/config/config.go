// Package config provides configuration loading for determine-image-tag.
// Inputs follow the GitHub Actions convention of INPUT_* environment
// variables, with plain-name fallbacks for local invocation, loaded through
// viper so each input has exactly one default and one precedence chain.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

// Configuration keys. Each key binds to its INPUT_* variable first and its
// plain or workflow-provided variable second.
const (
	KeyServiceName     = "service_name"
	KeyCustomTag       = "custom_tag"
	KeyTagFormat       = "tag_format"
	KeyMaxLength       = "max_length"
	KeyIncludeCounter  = "include_counter"
	KeyBranchSeparator = "branch_separator"
	KeyBranchRef       = "branch_ref"
	KeyPullRequestRef  = "pull_request_ref"
	KeyLogLevel        = "log_level"
	KeyLogAppName      = "log_app_name"
)

// Default values.
const (
	DefaultLogLevel   = "info"
	DefaultLogAppName = "determine-image-tag"
)

// envBindings maps each configuration key to its environment variables in
// precedence order.
var envBindings = map[string][]string{
	KeyServiceName:     {"INPUT_SERVICE_NAME", "SERVICE_NAME"},
	KeyCustomTag:       {"INPUT_CUSTOM_TAG", "CUSTOM_TAG"},
	KeyTagFormat:       {"INPUT_TAG_FORMAT", "TAG_FORMAT"},
	KeyMaxLength:       {"INPUT_MAX_LENGTH", "MAX_LENGTH"},
	KeyIncludeCounter:  {"INPUT_INCLUDE_COUNTER", "INCLUDE_COUNTER"},
	KeyBranchSeparator: {"INPUT_BRANCH_SEPARATOR", "BRANCH_SEPARATOR"},
	KeyBranchRef:       {"INPUT_BRANCH_REF", "GITHUB_REF"},
	KeyPullRequestRef:  {"INPUT_PULL_REQUEST_REF", "GITHUB_HEAD_REF"},
	KeyLogLevel:        {"LOG_LEVEL"},
	KeyLogAppName:      {"LOG_APP_NAME"},
}

// Config holds all application configuration.
type Config struct {
	// Request is the validated tag request assembled from the inputs.
	Request domain.TagRequest

	// LogLevel is the logging level (debug, info, error).
	LogLevel string

	// LogAppName is the application name for log context.
	LogAppName string
}

// Load loads the application configuration from environment variables.
// Inputs are read from INPUT_* variables (GitHub Actions convention) with
// plain-name fallbacks, validated against the tag request constraints.
// Returns a configuration sentinel error before any source-control access
// when validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyTagFormat, "")
	v.SetDefault(KeyMaxLength, domain.DefaultMaxLength)
	v.SetDefault(KeyIncludeCounter, true)
	v.SetDefault(KeyBranchSeparator, domain.DefaultBranchSeparator)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogAppName, DefaultLogAppName)

	for key, envs := range envBindings {
		vars := append([]string{key}, envs...)
		if err := v.BindEnv(vars...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	format, err := domain.ParseTagFormat(v.GetString(KeyTagFormat))
	if err != nil {
		return nil, err
	}

	req := domain.TagRequest{
		ServiceName:     v.GetString(KeyServiceName),
		CustomTag:       v.GetString(KeyCustomTag),
		Format:          format,
		MaxLength:       v.GetInt(KeyMaxLength),
		IncludeCounter:  v.GetBool(KeyIncludeCounter),
		BranchRef:       v.GetString(KeyBranchRef),
		PullRequestRef:  v.GetString(KeyPullRequestRef),
		BranchSeparator: v.GetString(KeyBranchSeparator),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &Config{
		Request:    req,
		LogLevel:   v.GetString(KeyLogLevel),
		LogAppName: v.GetString(KeyLogAppName),
	}, nil
}
