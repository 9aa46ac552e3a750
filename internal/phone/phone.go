// Package phone canonicalizes phone numbers into the digits-only key used
// to join leads and calls. Two numbers are the same contact iff their
// normalized forms are equal.
package phone

import "strings"

// Normalize strips every non-digit character. Idempotent. An empty result
// means the input carried no usable number and must not be used as a join
// key.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
