// Package domain defines the core business entities and interfaces for
// determine-image-tag.
package domain

import (
	"fmt"
	"strings"
)

// Default values for TagRequest fields.
const (
	// DefaultMaxLength is the default tag length ceiling. It matches the
	// Kubernetes label value limit, which is the tightest consumer of
	// these tags.
	DefaultMaxLength = 63

	// DefaultBranchSeparator replaces ref punctuation in branch names.
	DefaultBranchSeparator = "-"

	// MinBranchLength is the number of branch characters reserved from
	// truncation. The branch token is only shortened below this floor
	// after the service and date tokens are exhausted.
	MinBranchLength = 10
)

// TagFormat selects the field ordering of the composed tag.
type TagFormat int

// Supported tag formats. Fields are joined with "_"; the counter segment is
// only present for the *Counter formats.
const (
	FormatServiceDateBranchCounter TagFormat = iota
	FormatServiceBranchDateCounter
	FormatBranchDateCounter
	FormatBranchDate
	FormatDateBranch
)

// DefaultTagFormat is used when no format is configured.
const DefaultTagFormat = FormatServiceDateBranchCounter

// ParseTagFormat parses a format name into a TagFormat. Both "-" and "_" are
// accepted as separators between the format keywords, so
// "branch_date_counter" and "branch-date-counter" are equivalent. An empty
// string yields DefaultTagFormat. Unrecognized values return
// ErrUnknownTagFormat.
func ParseTagFormat(raw string) (TagFormat, error) {
	canonical := strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	switch canonical {
	case "":
		return DefaultTagFormat, nil
	case "service-date-branch-counter":
		return FormatServiceDateBranchCounter, nil
	case "service-branch-date-counter":
		return FormatServiceBranchDateCounter, nil
	case "branch-date-counter":
		return FormatBranchDateCounter, nil
	case "branch-date":
		return FormatBranchDate, nil
	case "date-branch":
		return FormatDateBranch, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTagFormat, raw)
	}
}

// String returns the canonical name of the format.
func (f TagFormat) String() string {
	switch f {
	case FormatServiceDateBranchCounter:
		return "service-date-branch-counter"
	case FormatServiceBranchDateCounter:
		return "service-branch-date-counter"
	case FormatBranchDateCounter:
		return "branch-date-counter"
	case FormatBranchDate:
		return "branch-date"
	case FormatDateBranch:
		return "date-branch"
	default:
		return "unknown"
	}
}

// HasCounter reports whether the format defines a counter slot. The
// branch-date and date-branch formats never carry a counter regardless of
// the include-counter setting.
func (f TagFormat) HasCounter() bool {
	switch f {
	case FormatServiceDateBranchCounter, FormatServiceBranchDateCounter, FormatBranchDateCounter:
		return true
	default:
		return false
	}
}

// TagRequest carries all inputs for a single tag computation. It is built
// once by the configuration layer and never mutated afterwards.
type TagRequest struct {
	// ServiceName is the leading service token. May be empty, in which
	// case the service segment is omitted from the tag entirely.
	ServiceName string

	// CustomTag, when non-empty, is returned verbatim as the tag and
	// bypasses composition, counter resolution, and length enforcement.
	CustomTag string

	// Format selects the field ordering.
	Format TagFormat

	// MaxLength is the tag length ceiling. Must be positive.
	MaxLength int

	// IncludeCounter enables the counter segment for formats that define
	// a counter slot.
	IncludeCounter bool

	// BranchRef is the raw branch ref, typically GITHUB_REF. A leading
	// refs/heads/ style prefix is stripped before normalization.
	BranchRef string

	// PullRequestRef is the head branch of a pull request, typically
	// GITHUB_HEAD_REF. When non-empty it takes precedence over BranchRef.
	PullRequestRef string

	// BranchSeparator replaces each of "/", ":", "@", "#" in the branch
	// name. Must be exactly one character.
	BranchSeparator string
}

// Validate checks the request against the configuration constraints.
// It returns a configuration sentinel error for the first violation found.
// Validation happens before any source-control access.
func (r TagRequest) Validate() error {
	if r.MaxLength <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxLength, r.MaxLength)
	}
	if len(r.BranchSeparator) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidSeparator, r.BranchSeparator)
	}
	if r.Format < FormatServiceDateBranchCounter || r.Format > FormatDateBranch {
		return fmt.Errorf("%w: %d", ErrUnknownTagFormat, int(r.Format))
	}
	return nil
}

// ResolvedContext holds the per-run values derived from the source-control
// collaborator and the clock. It is computed once at the start of a run so
// the rest of the computation stays a pure function.
type ResolvedContext struct {
	// CommitHash is the full commit SHA of HEAD.
	CommitHash string

	// RawBranch is the branch name before normalization, after pull
	// request precedence and ref-prefix stripping have been applied.
	RawBranch string

	// Branch is RawBranch with ref punctuation replaced by the
	// configured separator.
	Branch string

	// Date is the run date in YYYY-MM-DD form.
	Date string
}

// TagResult is the output of a tag computation.
type TagResult struct {
	// Tag is the final tag value.
	Tag string

	// CommitHash is the full commit SHA of HEAD.
	CommitHash string

	// Branch is the normalized branch name. It is populated even when a
	// custom tag bypassed composition.
	Branch string
}
