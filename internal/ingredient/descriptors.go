// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package ingredient

import "strings"

// descriptors are preparation and quality words stripped from ingredient
// names so "diced onions" and "onions" match the same pantry item.
var descriptors = []string{
	"chopped",
	"diced",
	"minced",
	"sliced",
	"grated",
	"shredded",
	"crushed",
	"ground",
	"peeled",
	"cubed",
	"julienned",
	"halved",
	"quartered",
	"trimmed",
	"rinsed",
	"drained",
	"divided",
	"beaten",
	"whisked",
	"melted",
	"softened",
	"toasted",
	"roasted",
	"cooked",
	"uncooked",
	"raw",
	"fresh",
	"frozen",
	"dried",
	"ripe",
	"large",
	"medium",
	"small",
	"finely",
	"coarsely",
	"thinly",
	"roughly",
	"packed",
	"heaping",
	"level",
	"boneless",
	"skinless",
	"optional",
}

// descriptorPhrases are multi-word descriptors removed before the word scan.
var descriptorPhrases = []string{
	"to taste",
	"for garnish",
	"for serving",
	"at room temperature",
}

// DescriptorWords returns the shared descriptor table for callers that embed
// it in prompts. The returned slice is a copy.
func DescriptorWords() []string {
	words := make([]string, 0, len(descriptors)+len(descriptorPhrases))
	words = append(words, descriptors...)
	words = append(words, descriptorPhrases...)
	return words
}

// CleanName strips cooking descriptors from an ingredient name, leaving the
// bare food noun. "diced onions" becomes "onions".
func CleanName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, phrase := range descriptorPhrases {
		s = strings.ReplaceAll(s, phrase, " ")
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '(' || r == ')'
	})
	kept := words[:0]
	for _, w := range words {
		if isDescriptor(w) {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return strings.TrimSpace(s)
	}
	return strings.Join(kept, " ")
}

func isDescriptor(word string) bool {
	for _, d := range descriptors {
		if word == d {
			return true
		}
	}
	return false
}