// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to compute
// image tags from source-control context.
package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

// Logger defines the logging interface required by the computer.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// dateLayout is the date field format in composed tags.
const dateLayout = "2006-01-02"

// TagComputer computes image tags from a tag request and the local
// repository's source-control context. It implements domain.Computer.
type TagComputer struct {
	source domain.SourceControl
	logger Logger
	now    func() time.Time
}

// NewTagComputer creates a TagComputer with the given dependencies.
// All dependencies are injected to support testing.
func NewTagComputer(source domain.SourceControl, log Logger) *TagComputer {
	return &TagComputer{
		source: source,
		logger: log,
		now:    time.Now,
	}
}

// NewTagComputerWithClock creates a TagComputer with a fixed clock.
// This is used by tests to pin the date field.
func NewTagComputerWithClock(source domain.SourceControl, log Logger, now func() time.Time) *TagComputer {
	return &TagComputer{
		source: source,
		logger: log,
		now:    now,
	}
}

// Compute resolves the run context and produces the final tag.
//
// The pipeline is: validate → resolve context (commit hash, branch, date) →
// custom-tag bypass → compose fields → resolve counter → enforce length.
// Configuration and identity failures abort the run; tag-listing failures
// degrade to a zero counter and never block.
func (c *TagComputer) Compute(ctx context.Context, req domain.TagRequest) (*domain.TagResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rc, err := c.resolveContext(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "resolved run context", map[string]interface{}{
		"commit_hash": rc.CommitHash,
		"raw_branch":  rc.RawBranch,
		"branch":      rc.Branch,
		"date":        rc.Date,
	})

	// A custom tag bypasses composition entirely; commit hash and branch
	// are still reported.
	if req.CustomTag != "" {
		c.logger.Info(ctx, "using custom tag", map[string]interface{}{
			"tag": req.CustomTag,
		})
		return &domain.TagResult{
			Tag:        req.CustomTag,
			CommitHash: rc.CommitHash,
			Branch:     rc.Branch,
		}, nil
	}

	tokens := composeTokens(req.Format, req.ServiceName, rc.Date, rc.Branch)
	prefix := joinTokens(tokens)

	counterSuffix := ""
	if req.Format.HasCounter() && req.IncludeCounter {
		counterSuffix = fieldSeparator + c.nextCounter(ctx, prefix)
	}

	tag := enforceLength(tokens, counterSuffix, req.MaxLength, domain.MinBranchLength)

	if len(tag) > req.MaxLength {
		// Only possible when the separators plus counter alone exceed
		// the budget; the counter is never sacrificed.
		c.logger.Warn(ctx, "tag exceeds max length after truncation", map[string]interface{}{
			"tag":        tag,
			"max_length": req.MaxLength,
		})
	}

	c.logger.Info(ctx, "tag computed", map[string]interface{}{
		"tag":         tag,
		"format":      req.Format.String(),
		"commit_hash": rc.CommitHash,
		"branch":      rc.Branch,
	})

	return &domain.TagResult{
		Tag:        tag,
		CommitHash: rc.CommitHash,
		Branch:     rc.Branch,
	}, nil
}

// resolveContext gathers the per-run values from the source-control
// collaborator and the clock.
func (c *TagComputer) resolveContext(ctx context.Context, req domain.TagRequest) (*domain.ResolvedContext, error) {
	hash, err := c.source.CommitHash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commit hash: %w", err)
	}

	raw, err := c.resolveRawBranch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch: %w", err)
	}

	return &domain.ResolvedContext{
		CommitHash: hash,
		RawBranch:  raw,
		Branch:     NormalizeBranch(raw, req.BranchSeparator),
		Date:       c.now().Format(dateLayout),
	}, nil
}

// resolveRawBranch applies pull-request precedence: the pull request ref
// wins when present, then the configured branch ref with any leading
// ref-path prefix stripped, then the repository's current branch.
func (c *TagComputer) resolveRawBranch(ctx context.Context, req domain.TagRequest) (string, error) {
	if req.PullRequestRef != "" {
		return req.PullRequestRef, nil
	}
	if req.BranchRef != "" {
		return stripRefPrefix(req.BranchRef), nil
	}
	ref, err := c.source.CurrentRef(ctx)
	if err != nil {
		return "", err
	}
	return ref, nil
}

// nextCounter determines the next free counter for the composed prefix.
// Query strategies are tried in order, short-circuiting on the first scope
// that answers; when every scope fails the count degrades to zero so a
// build is never blocked on tag listing.
func (c *TagComputer) nextCounter(ctx context.Context, prefix string) string {
	match := prefix + fieldSeparator

	scopes := []domain.TagScope{domain.ScopeRemote, domain.ScopeLocal}
	for _, scope := range scopes {
		tags, err := c.source.ListTags(ctx, scope, match)
		if err != nil {
			c.logger.Warn(ctx, "tag listing failed, trying next scope", map[string]interface{}{
				"scope":  scope.String(),
				"prefix": match,
				"error":  err.Error(),
			})
			continue
		}

		c.logger.Debug(ctx, "counted existing tags", map[string]interface{}{
			"scope":  scope.String(),
			"prefix": match,
			"count":  len(tags),
		})
		return formatCounter(len(tags))
	}

	c.logger.Warn(ctx, "all tag listings failed, defaulting counter to zero", map[string]interface{}{
		"prefix": match,
	})
	return formatCounter(0)
}
