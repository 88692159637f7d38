package usecases

// shrinkStep names a token role and the minimum length its value may be
// reduced to. Steps are applied in order until the assembled tag fits.
type shrinkStep struct {
	role  tokenRole
	floor int
}

// shrinkOrder is the truncation precedence: the service token goes first,
// then the date, then the branch down to its reserved floor. Cutting the
// branch below the floor is a last resort for budgets too small to honor
// both constraints.
func shrinkOrder(branchFloor int) []shrinkStep {
	return []shrinkStep{
		{role: roleService, floor: 0},
		{role: roleDate, floor: 0},
		{role: roleBranch, floor: branchFloor},
		{role: roleBranch, floor: 0},
	}
}

// enforceLength truncates the non-counter tokens so the assembled tag fits
// within maxLength. The counter suffix (including its separator) is never
// truncated or dropped, and separators between fields are never inserted,
// removed, or reordered; only token content shrinks. If even the separators
// plus the counter exceed maxLength the result is returned over budget with
// the counter intact.
//
// counterSuffix is the complete trailing segment including its leading
// field separator ("_03"), or empty when the format has no counter slot.
// branchFloor is the number of branch characters reserved from truncation.
func enforceLength(tokens []token, counterSuffix string, maxLength, branchFloor int) string {
	if joinedLen(tokens)+len(counterSuffix) <= maxLength {
		return joinTokens(tokens) + counterSuffix
	}

	target := maxLength - len(counterSuffix)

	work := make([]token, len(tokens))
	copy(work, tokens)

	for _, step := range shrinkOrder(branchFloor) {
		over := joinedLen(work) - target
		if over <= 0 {
			break
		}
		for i := range work {
			if work[i].role != step.role {
				continue
			}
			length := len(work[i].value)
			if length <= step.floor {
				continue
			}
			newLen := length - over
			if newLen < step.floor {
				newLen = step.floor
			}
			work[i].value = work[i].value[:newLen]
			over = joinedLen(work) - target
			if over <= 0 {
				break
			}
		}
	}

	return joinTokens(work) + counterSuffix
}

// joinedLen is the length of the joined token values without assembling
// the string.
func joinedLen(tokens []token) int {
	if len(tokens) == 0 {
		return 0
	}
	n := (len(tokens) - 1) * len(fieldSeparator)
	for _, t := range tokens {
		n += len(t.value)
	}
	return n
}
