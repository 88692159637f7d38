// Package cmd provides the CLI commands for determine-image-tag.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// SourceControlFactory creates a SourceControl for the given path.
	SourceControlFactory func(path string, log Logger) (domain.SourceControl, error)

	// ComputerFactory creates a Computer with the given dependencies.
	ComputerFactory func(source domain.SourceControl, log Logger) domain.Computer

	// OutputWriterFactory creates an OutputWriter.
	OutputWriterFactory func() domain.OutputWriter

	// Stdout is the writer for standard output (for the tag value).
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// Request is the tag request assembled from inputs and defaults.
	Request domain.TagRequest

	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string
}

// Command-line flags. Flags override the corresponding configuration inputs
// only when explicitly set.
var (
	serviceName     string
	customTag       string
	tagFormat       string
	maxLength       int
	includeCounter  bool
	branchSeparator string
	branchRef       string
	pullRequestRef  string
	verbose         bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for determine-image-tag.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "determine-image-tag [path]",
		Short: "Compute a deterministic image tag from git context",
		Long: `determine-image-tag computes a deterministic, collision-avoiding image tag
from the service name, the run date, the normalized branch name, and an
optional counter derived from the existing git tag namespace.

Inputs are read from INPUT_* environment variables (GitHub Actions
convention) with plain-name fallbacks; flags override both. The tag is
printed to stdout, and when GITHUB_OUTPUT is set the named outputs
tag, commit_hash, and branch are appended to the workflow output file.

Existing tags sharing the composed prefix are counted on the origin remote
first, falling back to local tags, to pick the next free 2-digit counter.
A non-empty custom tag is returned verbatim.

Examples:
  # Compute a tag for the repository in the current directory
  determine-image-tag --service-name api-gateway

  # Compute a tag for a specific repository path
  determine-image-tag /path/to/repo --service-name api-gateway

  # Branch-date ordering without a counter
  determine-image-tag --tag-format branch-date

  # Bypass composition entirely
  determine-image-tag --custom-tag v1.2.3-rc1`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, args, deps)
		},
	}

	// Define flags
	rootCmd.Flags().StringVarP(&serviceName, "service-name", "s", "",
		"Service name used as the leading tag token (empty to omit)")
	rootCmd.Flags().StringVarP(&customTag, "custom-tag", "t", "",
		"Literal tag to use verbatim, bypassing composition")
	rootCmd.Flags().StringVarP(&tagFormat, "tag-format", "f", "",
		"Tag field ordering (e.g. service-date-branch-counter, branch-date)")
	rootCmd.Flags().IntVarP(&maxLength, "max-length", "m", domain.DefaultMaxLength,
		"Maximum tag length")
	rootCmd.Flags().BoolVarP(&includeCounter, "include-counter", "c", true,
		"Append a 2-digit counter for formats that define one")
	rootCmd.Flags().StringVar(&branchSeparator, "branch-separator", domain.DefaultBranchSeparator,
		"Single character replacing '/', ':', '@', '#' in branch names")
	rootCmd.Flags().StringVar(&branchRef, "branch-ref", "",
		"Branch ref to tag (defaults to GITHUB_REF, then the current branch)")
	rootCmd.Flags().StringVar(&pullRequestRef, "pull-request-ref", "",
		"Pull request head ref, takes precedence over the branch ref")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runCompute executes the tag computation with injected dependencies.
func runCompute(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Determine repository path
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	// Get stderr for warnings
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	// Initialize logger
	log := deps.LoggerFactory()

	log.Info(ctx, "starting determine-image-tag", map[string]interface{}{
		"path":    repoPath,
		"verbose": verbose,
	})

	// Load configuration
	cfg, err := deps.ConfigLoader()
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	req, err := applyFlagOverrides(cmd, cfg.Request)
	if err != nil {
		log.Error(ctx, "invalid flag value", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	// Initialize source-control adapter
	source, err := deps.SourceControlFactory(repoPath, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"path": repoPath,
		})
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return fmt.Errorf("not a git repository: %s", repoPath)
		}
		return err
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close git repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	// Create computer and compute the tag
	computer := deps.ComputerFactory(source, log)
	result, err := computer.Compute(ctx, req)
	if err != nil {
		log.Error(ctx, "failed to compute tag", err, nil)
		if errors.Is(err, domain.ErrNoUsableRef) {
			return fmt.Errorf("cannot determine branch: HEAD is detached and no branch ref was provided")
		}
		return err
	}

	// Write the tag and named outputs
	writer := deps.OutputWriterFactory()
	if err := writer.WriteResult(result); err != nil {
		log.Error(ctx, "failed to write output", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	log.Info(ctx, "tag computation complete", map[string]interface{}{
		"tag":         result.Tag,
		"commit_hash": result.CommitHash,
		"branch":      result.Branch,
	})

	return nil
}

// applyFlagOverrides overlays explicitly set flags onto the configured
// request. Unset flags leave the configured values untouched so that
// environment inputs keep their defaults.
func applyFlagOverrides(cmd *cobra.Command, req domain.TagRequest) (domain.TagRequest, error) {
	flags := cmd.Flags()

	if flags.Changed("service-name") {
		req.ServiceName = serviceName
	}
	if flags.Changed("custom-tag") {
		req.CustomTag = customTag
	}
	if flags.Changed("tag-format") {
		format, err := domain.ParseTagFormat(tagFormat)
		if err != nil {
			return req, err
		}
		req.Format = format
	}
	if flags.Changed("max-length") {
		req.MaxLength = maxLength
	}
	if flags.Changed("include-counter") {
		req.IncludeCounter = includeCounter
	}
	if flags.Changed("branch-separator") {
		req.BranchSeparator = branchSeparator
	}
	if flags.Changed("branch-ref") {
		req.BranchRef = branchRef
	}
	if flags.Changed("pull-request-ref") {
		req.PullRequestRef = pullRequestRef
	}

	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		return
	}
}
