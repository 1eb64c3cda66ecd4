// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "cup", want: "c", ok: true},
		{in: "cups", want: "c", ok: true},
		{in: "Cups", want: "c", ok: true},
		{in: "pint", want: "pt", ok: true},
		{in: "quarts", want: "qt", ok: true},
		{in: "gallon", want: "gal", ok: true},
		{in: "oz.", want: "oz", ok: true},
		{in: "ounces", want: "oz", ok: true},
		{in: "lbs", want: "lb", ok: true},
		{in: "pound", want: "lb", ok: true},
		{in: "grams", want: "g", ok: true},
		{in: "kilograms", want: "kg", ok: true},
		{in: "mL", want: "ml", ok: true},
		{in: "millilitres", want: "ml", ok: true},
		{in: "L", want: "l", ok: true},
		{in: "litres", want: "l", ok: true},
		{in: " tbsp ", want: "", ok: false},
		{in: "tablespoon", want: "", ok: false},
		{in: "pinch", want: "", ok: false},
		{in: "", want: "", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := NormalizeUnit(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Normalization is idempotent and always lands on a canonical abbreviation:
// feeding any table result back in returns the same result.
func TestNormalizeUnit_Idempotent(t *testing.T) {
	canonical := make(map[string]bool, len(CanonicalUnits))
	for _, u := range CanonicalUnits {
		canonical[u] = true
	}

	for alias := range unitAliases {
		once, ok := NormalizeUnit(alias)
		require.True(t, ok, "alias %q must normalize", alias)
		require.True(t, canonical[once], "result %q must be canonical", once)

		twice, ok := NormalizeUnit(once)
		require.True(t, ok)
		assert.Equal(t, once, twice)
	}
}