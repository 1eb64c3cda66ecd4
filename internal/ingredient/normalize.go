// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package ingredient

import (
	"strings"
	"unicode"
)

// NormalizeName lowercases, trims, and strips punctuation from an ingredient
// or item name. Matching and de-duplication everywhere in the app compare
// names through this function, so it must stay the single definition.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}