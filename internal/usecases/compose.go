package usecases

import (
	"strings"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

// fieldSeparator joins the tag fields. This is fixed and independent of the
// configurable branch separator, which only applies inside the branch token.
const fieldSeparator = "_"

// tokenRole identifies which field a token holds. The length enforcer
// shrinks tokens in role precedence order.
type tokenRole int

const (
	roleService tokenRole = iota
	roleDate
	roleBranch
)

// token is a single tag field with its role.
type token struct {
	role  tokenRole
	value string
}

// composeTokens produces the ordered field list for the given format. An
// empty service name omits the service token entirely rather than producing
// an empty segment.
func composeTokens(format domain.TagFormat, service, date, branch string) []token {
	dateTok := token{role: roleDate, value: date}
	branchTok := token{role: roleBranch, value: branch}

	switch format {
	case domain.FormatServiceDateBranchCounter:
		return withService(service, dateTok, branchTok)
	case domain.FormatServiceBranchDateCounter:
		return withService(service, branchTok, dateTok)
	case domain.FormatBranchDateCounter, domain.FormatBranchDate:
		return []token{branchTok, dateTok}
	case domain.FormatDateBranch:
		return []token{dateTok, branchTok}
	default:
		return []token{dateTok, branchTok}
	}
}

// withService prepends the service token unless service is empty.
func withService(service string, rest ...token) []token {
	if service == "" {
		return rest
	}
	return append([]token{{role: roleService, value: service}}, rest...)
}

// joinTokens assembles token values with the field separator.
func joinTokens(tokens []token) string {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.value
	}
	return strings.Join(values, fieldSeparator)
}
