// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package planner matches dish ingredients against the user's pantry and
// shopping list and maintains the claim bookkeeping that keeps one physical
// item from being reserved by two dishes.
package planner

import (
	"github.com/larderapp/server/internal/ingredient"
	"github.com/larderapp/server/internal/larderdb"
)

// Match is the outcome of matching one ingredient line.
type Match struct {
	// Ingredient is the classified ingredient line.
	Ingredient larderdb.DishIngredient

	// NormalizedName is the name the lookup was performed with.
	NormalizedName string

	// PantryItem is the matched pantry item, if any.
	PantryItem *larderdb.FoodItem

	// ShoppingListItem is the matched open shopping-list item, if any.
	ShoppingListItem *larderdb.ShoppingListItem
}

// MatchIngredients classifies each ingredient line against the unclaimed
// pantry items and open shopping-list items. Candidates already claimed by
// any dish must be filtered out before calling. An item matched by one line
// is not offered to later lines of the same dish.
func MatchIngredients(lines []string, pantry []larderdb.FoodItem, listItems []larderdb.ShoppingListItem) []Match {
	pantryByName := make(map[string][]*larderdb.FoodItem, len(pantry))
	for i := range pantry {
		item := &pantry[i]
		pantryByName[item.NormalizedName] = append(pantryByName[item.NormalizedName], item)
	}
	listByName := make(map[string][]*larderdb.ShoppingListItem, len(listItems))
	for i := range listItems {
		item := &listItems[i]
		listByName[item.NormalizedName] = append(listByName[item.NormalizedName], item)
	}

	usedPantry := make(map[string]bool)
	usedList := make(map[string]bool)

	matches := make([]Match, 0, len(lines))
	for _, line := range lines {
		parsed := ingredient.ParseQuantity(line)
		name := ingredient.NormalizeName(ingredient.CleanName(parsed.ItemName))

		needed := parsed.Quantity
		if needed == 0 {
			needed = 1
		}
		unit := ""
		if parsed.Unit != "" {
			unit, _ = ingredient.NormalizeUnit(parsed.Unit)
		}

		m := Match{
			Ingredient: larderdb.DishIngredient{
				Text:     line,
				Name:     name,
				Quantity: needed,
				Unit:     unit,
				Status:   larderdb.IngredientStatusMissing,
			},
			NormalizedName: name,
		}

		if item := firstUnused(pantryByName[name], usedPantry); item != nil {
			usedPantry[item.ID] = true
			m.PantryItem = item
			if item.Quantity >= needed {
				m.Ingredient.Status = larderdb.IngredientStatusAvailable
			} else {
				m.Ingredient.Status = larderdb.IngredientStatusPartial
			}
		} else if listItem := firstUnusedListItem(listByName[name], usedList); listItem != nil {
			usedList[listItem.ID] = true
			m.ShoppingListItem = listItem
			// On the way, not on hand.
			m.Ingredient.Status = larderdb.IngredientStatusPartial
		}

		matches = append(matches, m)
	}
	return matches
}

func firstUnused(items []*larderdb.FoodItem, used map[string]bool) *larderdb.FoodItem {
	for _, item := range items {
		if !used[item.ID] {
			return item
		}
	}
	return nil
}

func firstUnusedListItem(items []*larderdb.ShoppingListItem, used map[string]bool) *larderdb.ShoppingListItem {
	for _, item := range items {
		if !used[item.ID] {
			return item
		}
	}
	return nil
}