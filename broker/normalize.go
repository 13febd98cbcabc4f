// Package broker canonicalizes raw broker-branch labels to their parent
// brokerage identity ("mother broker"). A label like 9800日盛台北分公司
// reduces to 日盛: numeric branch code, branch location and corporate suffix
// all stripped.
package broker

import "strings"

// Normalizer binds a branch-token lexicon. The zero value is not usable;
// construct with New.
type Normalizer struct {
	lexicon []string
}

// New returns a Normalizer over the given lexicon. A nil lexicon means the
// built-in table.
func New(lexicon []string) Normalizer {
	if lexicon == nil {
		lexicon = Lexicon
	}
	return Normalizer{lexicon: lexicon}
}

// Normalize is shorthand for New(nil).Normalize.
func Normalize(label string) string {
	return New(nil).Normalize(label)
}

// Normalize maps a raw broker label to its canonical parent-broker key.
// It is pure and idempotent; the result is never empty (falls back to the
// input when stripping would erase everything).
func (n Normalizer) Normalize(label string) string {
	name := stripBranchCode(label)
	name = n.truncateAtBranchToken(name)
	name = stripSuffix(name)
	if name == "" {
		return label
	}
	return name
}

// stripBranchCode removes a leading run of 3-4 ASCII digits, preferring 4.
func stripBranchCode(s string) string {
	digits := 0
	for digits < len(s) && digits < 4 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits < 3 {
		return s
	}
	return s[digits:]
}

// truncateAtBranchToken deletes the earliest-positioned lexicon token and
// everything after it. At equal positions the token listed first in the
// lexicon wins; longer tokens get no priority.
func (n Normalizer) truncateAtBranchToken(s string) string {
	for i := 0; i < len(s); i++ {
		for _, tok := range n.lexicon {
			if strings.HasPrefix(s[i:], tok) {
				return s[:i]
			}
		}
	}
	return s
}

func stripSuffix(s string) string {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return strings.TrimSuffix(s, suf)
		}
	}
	return s
}
