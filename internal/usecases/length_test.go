package usecases

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyhook-io/determine-image-tag/internal/domain"
)

func TestEnforceLength(t *testing.T) {
	tokens := func(service, date, branch string) []token {
		var out []token
		if service != "" {
			out = append(out, token{role: roleService, value: service})
		}
		out = append(out,
			token{role: roleDate, value: date},
			token{role: roleBranch, value: branch},
		)
		return out
	}

	tests := []struct {
		name          string
		tokens        []token
		counterSuffix string
		maxLength     int
		want          string
	}{
		{
			name:          "within budget unchanged",
			tokens:        tokens("api-gateway", "2024-01-15", "feature-user-login"),
			counterSuffix: "_00",
			maxLength:     63,
			want:          "api-gateway_2024-01-15_feature-user-login_00",
		},
		{
			name:          "exactly at budget unchanged",
			tokens:        tokens("", "2024-01-15", "main"),
			counterSuffix: "_00",
			maxLength:     18,
			want:          "2024-01-15_main_00",
		},
		{
			name: "service truncated first then date, counter intact",
			// The 20-character budget forces the service to vanish and
			// the date down to two characters; the branch stays whole.
			tokens:        tokens("very-long-service-name", "2024-01-15", "feature-login"),
			counterSuffix: "_03",
			maxLength:     20,
			want:          "_20_feature-login_03",
		},
		{
			name:          "branch shrunk only to its reserved floor",
			tokens:        tokens("svc", "2024-01-15", "a-very-long-branch-name"),
			counterSuffix: "_00",
			maxLength:     20,
			want:          "__a-very-long-bra_00",
		},
		{
			name:          "branch cut below floor as last resort",
			tokens:        tokens("svc", "2024-01-15", "a-very-long-branch-name"),
			counterSuffix: "_00",
			maxLength:     10,
			want:          "__a-ver_00",
		},
		{
			name:          "no counter slot truncates from service",
			tokens:        tokens("very-long-service-name", "2024-01-15", "feature-login"),
			counterSuffix: "",
			maxLength:     24,
			want:          "_2024-01-1_feature-login",
		},
		{
			name:          "partial service shrink suffices",
			tokens:        tokens("api-gateway", "2024-01-15", "main"),
			counterSuffix: "_00",
			maxLength:     25,
			want:          "api-ga_2024-01-15_main_00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enforceLength(tt.tokens, tt.counterSuffix, tt.maxLength, domain.MinBranchLength)

			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.maxLength)
			if tt.counterSuffix != "" {
				assert.True(t, strings.HasSuffix(got, tt.counterSuffix),
					"counter suffix must survive truncation")
			}
		})
	}
}

// When even the separators plus the counter exceed the budget, the counter
// is still preserved and the result is returned over budget.
func TestEnforceLength_CounterNeverDropped(t *testing.T) {
	tokens := []token{
		{role: roleService, value: "svc"},
		{role: roleDate, value: "2024-01-15"},
		{role: roleBranch, value: "main"},
	}

	got := enforceLength(tokens, "_00", 2, domain.MinBranchLength)

	assert.Equal(t, "___00", got)
	assert.True(t, strings.HasSuffix(got, "_00"))
}

func TestEnforceLength_ShortBranchUnaffectedByFloor(t *testing.T) {
	// A branch already shorter than the floor is not padded or grown; it
	// is only cut in the last-resort step.
	tokens := []token{
		{role: roleService, value: "service"},
		{role: roleDate, value: "2024-01-15"},
		{role: roleBranch, value: "main"},
	}

	got := enforceLength(tokens, "_00", 12, domain.MinBranchLength)

	assert.Equal(t, "_202_main_00", got)
	assert.LessOrEqual(t, len(got), 12)
}

func TestJoinedLen(t *testing.T) {
	assert.Equal(t, 0, joinedLen(nil))
	assert.Equal(t, 4, joinedLen([]token{{role: roleBranch, value: "main"}}))
	assert.Equal(t, 15, joinedLen([]token{
		{role: roleDate, value: "2024-01-15"},
		{role: roleBranch, value: "main"},
	}))
}
