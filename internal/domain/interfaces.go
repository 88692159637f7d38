// Package domain defines the core business entities and interfaces for
// determine-image-tag. This package contains no external dependencies and
// represents the innermost layer of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for configuration and source-control operations.
var (
	// ErrRepositoryNotFound indicates the specified path is not a valid Git repository.
	ErrRepositoryNotFound = errors.New("git repository not found at specified path")

	// ErrUnknownTagFormat indicates the configured tag format is not one of the
	// supported orderings.
	ErrUnknownTagFormat = errors.New("unknown tag format")

	// ErrInvalidMaxLength indicates a non-positive max length was configured.
	ErrInvalidMaxLength = errors.New("max length must be positive")

	// ErrInvalidSeparator indicates the branch separator is not a single character.
	ErrInvalidSeparator = errors.New("branch separator must be a single character")

	// ErrNoUsableRef indicates no branch name could be resolved: no ref was
	// provided and HEAD is detached.
	ErrNoUsableRef = errors.New("no usable branch ref; HEAD is detached and no ref was provided")

	// ErrTagQueryFailed indicates a tag listing could not be completed.
	// This error is non-fatal: the counter resolver falls back to the next
	// query scope, degrading to a zero count when every scope fails.
	ErrTagQueryFailed = errors.New("tag listing failed")
)

// TagScope selects which tag namespace a listing queries.
type TagScope int

const (
	// ScopeRemote lists tags on the origin remote.
	ScopeRemote TagScope = iota

	// ScopeLocal lists tags in the local repository.
	ScopeLocal
)

// String returns the scope name for logging.
func (s TagScope) String() string {
	if s == ScopeRemote {
		return "remote"
	}
	return "local"
}

// SourceControl provides the four source-control capabilities the core
// consumes. Implementations wrap a local git repository.
type SourceControl interface {
	// CommitHash returns the full commit SHA of HEAD.
	CommitHash(ctx context.Context) (string, error)

	// CurrentRef returns the short branch name for the working tree.
	// Returns ErrNoUsableRef if HEAD is detached.
	CurrentRef(ctx context.Context) (string, error)

	// ListTags returns the tag names in the given scope that start with
	// prefix. Remote listings fail with ErrTagQueryFailed on network,
	// auth, or missing-remote conditions; local listings are expected to
	// succeed whenever a repository is present.
	ListTags(ctx context.Context, scope TagScope, prefix string) ([]string, error)

	// Close releases any resources held by the repository.
	Close() error
}

// Computer computes a tag for a request.
type Computer interface {
	// Compute resolves context, composes the tag, and enforces the
	// length budget. A non-empty CustomTag short-circuits composition.
	Compute(ctx context.Context, req TagRequest) (*TagResult, error)
}

// OutputWriter writes a computed tag result to an output destination.
type OutputWriter interface {
	// WriteResult writes the tag result.
	WriteResult(result *TagResult) error
}
