// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package ingredient

import (
	"strconv"
	"strings"
)

// VulgarFractions maps unicode fraction runes to their numeric value. The
// same set anchors the plausibility filter's leading-quantity check.
var VulgarFractions = map[rune]float64{
	'½': 0.5,
	'¼': 0.25,
	'¾': 0.75,
	'⅓': 1.0 / 3.0,
	'⅔': 2.0 / 3.0,
	'⅛': 0.125,
	'⅜': 0.375,
	'⅝': 0.625,
	'⅞': 0.875,
}

// ParsedQuantity is the local decomposition of an ingredient line.
type ParsedQuantity struct {
	// Quantity is the parsed amount, or 0 when the line has no leading
	// quantity token.
	Quantity float64

	// Unit is the unit token as written, e.g. "cup". Callers store it only
	// after NormalizeUnit.
	Unit string

	// ItemName is the rest of the line.
	ItemName string
}

// ParseQuantity decomposes a free-text ingredient line into quantity, unit,
// and name without calling any model. "1/2 cup diced onions" parses to
// 0.5 / "cup" / "diced onions". Lines with no leading quantity return the
// whole line as ItemName.
func ParseQuantity(line string) ParsedQuantity {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return ParsedQuantity{}
	}

	qty, ok := parseNumber(fields[0])
	if !ok {
		return ParsedQuantity{ItemName: strings.Join(fields, " ")}
	}
	rest := fields[1:]

	// A mixed number like "1 1/2" adds the fractional part.
	if len(rest) > 0 {
		if frac, ok := parseNumber(rest[0]); ok && frac < 1 {
			qty += frac
			rest = rest[1:]
		}
	}

	unit := ""
	if len(rest) > 0 {
		if _, ok := NormalizeUnit(rest[0]); ok {
			unit = rest[0]
			rest = rest[1:]
		}
	}

	return ParsedQuantity{
		Quantity: qty,
		Unit:     unit,
		ItemName: strings.Join(rest, " "),
	}
}

// parseNumber reads a single token as an integer, decimal, slash fraction,
// or unicode vulgar fraction, including forms like "1½".
func parseNumber(token string) (float64, bool) {
	if token == "" {
		return 0, false
	}

	runes := []rune(token)
	if v, ok := VulgarFractions[runes[len(runes)-1]]; ok {
		lead := string(runes[:len(runes)-1])
		if lead == "" {
			return v, true
		}
		n, err := strconv.ParseFloat(lead, 64)
		if err != nil {
			return 0, false
		}
		return n + v, true
	}

	if num, den, ok := strings.Cut(token, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	n, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}