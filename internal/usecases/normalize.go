package usecases

import "strings"

// refPrefixes are the ref-path prefixes stripped from a branch ref before
// normalization. Order matters: the longest matching prefix wins.
var refPrefixes = []string{
	"refs/heads/",
	"refs/tags/",
	"refs/remotes/origin/",
}

// NormalizeBranch converts a raw branch name into a tag-safe token by
// replacing each of "/", ":", "@", "#" with the separator. Case is
// preserved, repeated separators are not collapsed, and no other characters
// are altered. The transform is idempotent.
func NormalizeBranch(raw, separator string) string {
	r := strings.NewReplacer(
		"/", separator,
		":", separator,
		"@", separator,
		"#", separator,
	)
	return r.Replace(raw)
}

// stripRefPrefix removes a leading ref-path prefix such as "refs/heads/"
// from a branch ref, leaving the bare branch name.
func stripRefPrefix(ref string) string {
	for _, p := range refPrefixes {
		if strings.HasPrefix(ref, p) {
			return strings.TrimPrefix(ref, p)
		}
	}
	return ref
}
