// Package git provides adapters for interacting with local Git repositories.
// This package implements the domain.SourceControl interface using go-git/v5.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// remoteName is the remote queried for the remote tag namespace.
const remoteName = "origin"

// GoGitRepository implements domain.SourceControl using go-git/v5.
// It provides commit identity, ref resolution, and tag listing for the
// tag computation.
type GoGitRepository struct {
	repo   *git.Repository
	path   string
	logger Logger
}

// NewGoGitRepository creates a new GoGitRepository for the given path.
// The path can be either a working directory or a bare repository.
// Returns domain.ErrRepositoryNotFound if the path is not a valid Git repository.
func NewGoGitRepository(path string, log Logger) (*GoGitRepository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	return &GoGitRepository{
		repo:   repo,
		path:   path,
		logger: log,
	}, nil
}

// CommitHash returns the full commit SHA of HEAD.
func (r *GoGitRepository) CommitHash(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// CurrentRef returns the short branch name for the working tree.
// Returns domain.ErrNoUsableRef if HEAD is detached.
func (r *GoGitRepository) CurrentRef(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		r.logger.Warn(ctx, "HEAD is detached", map[string]interface{}{
			"head_sha": head.Hash().String(),
			"path":     r.path,
		})
		return "", fmt.Errorf("%w: HEAD at %s", domain.ErrNoUsableRef, head.Hash().String())
	}

	return head.Name().Short(), nil
}

// ListTags returns the tag names in the given scope that start with prefix.
// Remote listings require network access to the origin remote and fail with
// domain.ErrTagQueryFailed when it is missing or unreachable. Local listings
// read the repository's own tag refs.
func (r *GoGitRepository) ListTags(ctx context.Context, scope domain.TagScope, prefix string) ([]string, error) {
	switch scope {
	case domain.ScopeRemote:
		return r.listRemoteTags(ctx, prefix)
	default:
		return r.listLocalTags(ctx, prefix)
	}
}

// listRemoteTags lists tags on the origin remote matching prefix.
func (r *GoGitRepository) listRemoteTags(ctx context.Context, prefix string) ([]string, error) {
	remote, err := r.repo.Remote(remoteName)
	if err != nil {
		return nil, fmt.Errorf("%w: no %s remote: %w", domain.ErrTagQueryFailed, remoteName, err)
	}

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s refs: %w", domain.ErrTagQueryFailed, remoteName, err)
	}

	var tags []string
	for _, ref := range refs {
		if !ref.Name().IsTag() {
			continue
		}
		if name := ref.Name().Short(); strings.HasPrefix(name, prefix) {
			tags = append(tags, name)
		}
	}

	r.logger.Debug(ctx, "listed remote tags", map[string]interface{}{
		"prefix":  prefix,
		"matches": len(tags),
	})

	return tags, nil
}

// listLocalTags lists tags in the local repository matching prefix.
func (r *GoGitRepository) listLocalTags(ctx context.Context, prefix string) ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("%w: listing local tags: %w", domain.ErrTagQueryFailed, err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if name := ref.Name().Short(); strings.HasPrefix(name, prefix) {
			tags = append(tags, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking local tags: %w", domain.ErrTagQueryFailed, err)
	}

	r.logger.Debug(ctx, "listed local tags", map[string]interface{}{
		"prefix":  prefix,
		"matches": len(tags),
	})

	return tags, nil
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}
