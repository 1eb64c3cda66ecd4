// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import "time"

// StorageLocation is where a food item is kept.
type StorageLocation string

const (
	StorageLocationRefrigerator StorageLocation = "refrigerator"
	StorageLocationFreezer      StorageLocation = "freezer"
	StorageLocationPantry       StorageLocation = "pantry"
)

// FoodItem is a perishable or pantry item owned by a user. Items are stored
// in the items collection for a user.
type FoodItem struct {
	// ID is the unique identifier of the item.
	ID string `firestore:"id"`

	// Name is the display name of the item.
	Name string `firestore:"name"`

	// NormalizedName is the name normalized for matching and de-duplication.
	NormalizedName string `firestore:"normalizedName"`

	// CategoryID is the ID of the category the item belongs to.
	CategoryID string `firestore:"categoryId"`

	// Quantity is the amount of the item on hand.
	Quantity float64 `firestore:"quantity"`

	// Unit is the canonical unit abbreviation for the quantity, or empty
	// when the quantity is a bare count.
	Unit string `firestore:"unit"`

	// Location is where the item is stored.
	Location StorageLocation `firestore:"location"`

	// ExpiresAt is when the item is expected to go bad.
	ExpiresAt time.Time `firestore:"expiresAt"`

	// AddedAt is when the item was added.
	AddedAt time.Time `firestore:"addedAt"`

	// ClaimedByDishID is the ID of the dish that has reserved this item,
	// or empty when the item is unclaimed. At most one dish may hold a
	// claim on an item at a time.
	ClaimedByDishID string `firestore:"claimedByDishId"`
}

// Category groups food items, e.g. produce or dairy.
type Category struct {
	// ID is the unique identifier of the category.
	ID string `firestore:"id"`

	// Name is the display name of the category.
	Name string `firestore:"name"`

	// SortOrder orders categories in list views.
	SortOrder int `firestore:"sortOrder"`
}

// MasterFood is an entry in the shared food reference list, including
// default shelf lives per storage location.
type MasterFood struct {
	// ID is the unique identifier of the entry.
	ID string `firestore:"id"`

	// Name is the reference name of the food.
	Name string `firestore:"name"`

	// NormalizedName is the name normalized for matching.
	NormalizedName string `firestore:"normalizedName"`

	// CategoryID is the default category for the food.
	CategoryID string `firestore:"categoryId"`

	// ShelfLifeDays maps a storage location to the typical shelf life in days.
	ShelfLifeDays map[string]int `firestore:"shelfLifeDays"`
}