// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxPromptChars bounds the text handed to the model, a token-budget
// safeguard for arbitrarily large pages.
const maxPromptChars = 8000

var (
	scriptStyleBlocks = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	anyTag            = regexp.MustCompile(`<[^>]*>`)
)

// StripForPrompt reduces raw HTML to plain text suitable for a completion
// prompt: script and style blocks removed, tags stripped, entities decoded,
// whitespace collapsed, truncated to the token budget.
func StripForPrompt(rawHTML string) string {
	text := scriptStyleBlocks.ReplaceAllString(rawHTML, " ")
	text = anyTag.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxPromptChars {
		cut := maxPromptChars
		// Back up to a rune boundary so the cut never splits a multibyte
		// character.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}