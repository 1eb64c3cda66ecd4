// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderapp/server/internal/larderdb"
)

func pantryItem(id, name string, qty float64) larderdb.FoodItem {
	return larderdb.FoodItem{ID: id, Name: name, NormalizedName: name, Quantity: qty}
}

func listItem(id, name string) larderdb.ShoppingListItem {
	return larderdb.ShoppingListItem{ID: id, ListID: "list-1", Name: name, NormalizedName: name}
}

func TestMatchIngredients_Classification(t *testing.T) {
	pantry := []larderdb.FoodItem{
		pantryItem("p-eggs", "eggs", 6),
		pantryItem("p-flour", "flour", 1),
	}
	list := []larderdb.ShoppingListItem{
		listItem("s-milk", "milk"),
	}

	matches := MatchIngredients([]string{
		"2 eggs",
		"3 cups flour",
		"1 cup milk",
		"1 tsp saffron",
	}, pantry, list)
	require.Len(t, matches, 4)

	assert.Equal(t, larderdb.IngredientStatusAvailable, matches[0].Ingredient.Status)
	require.NotNil(t, matches[0].PantryItem)
	assert.Equal(t, "p-eggs", matches[0].PantryItem.ID)
	assert.InDelta(t, 2, matches[0].Ingredient.Quantity, 1e-9)

	// Pantry has flour, but not enough.
	assert.Equal(t, larderdb.IngredientStatusPartial, matches[1].Ingredient.Status)
	require.NotNil(t, matches[1].PantryItem)
	assert.Equal(t, "c", matches[1].Ingredient.Unit)

	// On the shopping list, not on hand.
	assert.Equal(t, larderdb.IngredientStatusPartial, matches[2].Ingredient.Status)
	assert.Nil(t, matches[2].PantryItem)
	require.NotNil(t, matches[2].ShoppingListItem)
	assert.Equal(t, "s-milk", matches[2].ShoppingListItem.ID)

	assert.Equal(t, larderdb.IngredientStatusMissing, matches[3].Ingredient.Status)
	assert.Nil(t, matches[3].PantryItem)
	assert.Nil(t, matches[3].ShoppingListItem)
}

func TestMatchIngredients_DescriptorsStrippedForLookup(t *testing.T) {
	pantry := []larderdb.FoodItem{pantryItem("p-onions", "onions", 3)}

	matches := MatchIngredients([]string{"2 diced onions"}, pantry, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "onions", matches[0].NormalizedName)
	assert.Equal(t, larderdb.IngredientStatusAvailable, matches[0].Ingredient.Status)
}

func TestMatchIngredients_NoQuantityAssumesOne(t *testing.T) {
	pantry := []larderdb.FoodItem{pantryItem("p-salt", "salt", 1)}

	matches := MatchIngredients([]string{"salt"}, pantry, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, larderdb.IngredientStatusAvailable, matches[0].Ingredient.Status)
	assert.InDelta(t, 1, matches[0].Ingredient.Quantity, 1e-9)
}

// Two lines of the same dish cannot both reserve the single eggs item.
func TestMatchIngredients_ItemUsedOncePerDish(t *testing.T) {
	pantry := []larderdb.FoodItem{pantryItem("p-eggs", "eggs", 6)}

	matches := MatchIngredients([]string{"2 eggs", "3 eggs"}, pantry, nil)
	require.Len(t, matches, 2)
	assert.Equal(t, larderdb.IngredientStatusAvailable, matches[0].Ingredient.Status)
	assert.Equal(t, larderdb.IngredientStatusMissing, matches[1].Ingredient.Status)
}

// Items claimed by another dish are excluded from the candidate pool before
// matching, so a second dish sees the pantry without them. Concurrent saves
// that both matched the same item are resolved by the conditional claim in
// SaveDish, which fails the later transaction with ErrItemClaimed instead of
// letting both dishes hold the item.
func TestMatchIngredients_ClaimedItemsExcludedByCaller(t *testing.T) {
	// Dish A claimed the only eggs; the candidate fetch filters it out.
	matches := MatchIngredients([]string{"2 eggs"}, nil, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, larderdb.IngredientStatusMissing, matches[0].Ingredient.Status)
}