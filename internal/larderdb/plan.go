// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import "time"

// MealType is the slot of a planned meal within a day.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// IngredientStatus classifies how a dish ingredient is covered by the
// user's pantry and shopping list.
type IngredientStatus string

const (
	// IngredientStatusAvailable means a pantry match covers the needed amount.
	IngredientStatusAvailable IngredientStatus = "available"
	// IngredientStatusPartial means a pantry match exists with insufficient quantity.
	IngredientStatusPartial IngredientStatus = "partial"
	// IngredientStatusMissing means no usable match in pantry or shopping list.
	IngredientStatusMissing IngredientStatus = "missing"
)

// DishIngredient is one ingredient line of a dish with its coverage
// classification at save time.
type DishIngredient struct {
	// Text is the ingredient as free-form text.
	Text string `firestore:"text"`

	// Name is the parsed ingredient name, or the raw text when parsing
	// was skipped.
	Name string `firestore:"name"`

	// Quantity is the parsed amount needed, or 0 when unknown.
	Quantity float64 `firestore:"quantity"`

	// Unit is the canonical unit abbreviation, or empty.
	Unit string `firestore:"unit"`

	// Status is the coverage classification for the ingredient.
	Status IngredientStatus `firestore:"status"`
}

// Dish is a named set of ingredients within a planned meal, plus the
// bookkeeping of which pantry and shopping-list items it has reserved.
type Dish struct {
	// ID is the unique identifier of the dish.
	ID string `firestore:"id"`

	// Name is the display name of the dish.
	Name string `firestore:"name"`

	// SourceURL is the URL the dish was imported from, if any.
	SourceURL string `firestore:"sourceUrl"`

	// ImageURL is the URL for an image of the dish, if any.
	ImageURL string `firestore:"imageUrl"`

	// Ingredients are the ingredient lines of the dish.
	Ingredients []DishIngredient `firestore:"ingredients"`

	// ReservedQuantities maps a normalized ingredient name to the amount
	// reserved for this dish.
	ReservedQuantities map[string]float64 `firestore:"reservedQuantities"`

	// ClaimedItemIDs are pantry item IDs reserved by this dish. An item ID
	// appears in at most one dish's claim sets at a time.
	ClaimedItemIDs []string `firestore:"claimedItemIds"`

	// ClaimedShoppingListItemIDs are shopping-list item IDs reserved by
	// this dish.
	ClaimedShoppingListItemIDs []string `firestore:"claimedShoppingListItemIds"`

	// Completed is whether the dish has been cooked.
	Completed bool `firestore:"completed"`
}

// PlannedMeal is a (date, meal type) slot holding zero or more dishes.
// Meals are stored in the meals collection for a user with the ID
// YYYY-mm-dd-<mealType>, so at most one document exists per slot.
type PlannedMeal struct {
	// ID is the unique identifier of the meal.
	ID string `firestore:"id"`

	// Date is the day of the meal.
	Date time.Time `firestore:"date"`

	// MealType is the slot within the day.
	MealType MealType `firestore:"mealType"`

	// Dishes are the dishes planned for the slot.
	Dishes []Dish `firestore:"dishes"`
}

// MealID returns the deterministic document ID for a (date, mealType) slot.
func MealID(date time.Time, mealType MealType) string {
	return date.Format("2006-01-02") + "-" + string(mealType)
}