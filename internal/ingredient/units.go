// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package ingredient holds the shared normalization tables and parsers used
// by the import pipeline and the meal planner. Every consumer imports these
// tables from here so the allow-lists cannot drift between call sites.
package ingredient

import "strings"

// CanonicalUnits are the only unit abbreviations ever stored. Any unit not
// normalizable to one of these is discarded rather than passed through.
var CanonicalUnits = []string{"c", "pt", "qt", "gal", "oz", "lb", "g", "kg", "ml", "l"}

// unitAliases maps unit spellings to their canonical abbreviation. Keys are
// lowercase with trailing periods already stripped.
var unitAliases = map[string]string{
	"c":           "c",
	"cup":         "c",
	"cups":        "c",
	"pt":          "pt",
	"pint":        "pt",
	"pints":       "pt",
	"qt":          "qt",
	"qts":         "qt",
	"quart":       "qt",
	"quarts":      "qt",
	"gal":         "gal",
	"gals":        "gal",
	"gallon":      "gal",
	"gallons":     "gal",
	"oz":          "oz",
	"ozs":         "oz",
	"ounce":       "oz",
	"ounces":      "oz",
	"lb":          "lb",
	"lbs":         "lb",
	"pound":       "lb",
	"pounds":      "lb",
	"g":           "g",
	"gm":          "g",
	"gms":         "g",
	"gram":        "g",
	"grams":       "g",
	"kg":          "kg",
	"kgs":         "kg",
	"kilo":        "kg",
	"kilos":       "kg",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"ml":          "ml",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"l":           "l",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"litres":      "l",
}

// NormalizeUnit maps a free-text unit to its canonical abbreviation. The
// second return is false when the unit is not in the allow-list, in which
// case the caller must discard it rather than store the raw text.
func NormalizeUnit(unit string) (string, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, ".")
	canonical, ok := unitAliases[u]
	return canonical, ok
}