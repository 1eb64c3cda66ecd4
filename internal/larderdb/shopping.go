// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import "time"

// ShoppingList is a named list of items to buy. Lists are stored in the
// shoppingLists collection for a user.
type ShoppingList struct {
	// ID is the unique identifier of the list.
	ID string `firestore:"id"`

	// Name is the display name of the list.
	Name string `firestore:"name"`

	// CreatedAt is when the list was created.
	CreatedAt time.Time `firestore:"createdAt"`
}

// ShoppingListItem is a single entry on a shopping list.
type ShoppingListItem struct {
	// ID is the unique identifier of the item.
	ID string `firestore:"id"`

	// ListID is the ID of the list the item belongs to.
	ListID string `firestore:"listId"`

	// Name is the display name of the item.
	Name string `firestore:"name"`

	// NormalizedName is the name normalized for matching and de-duplication.
	NormalizedName string `firestore:"normalizedName"`

	// Quantity is the amount to buy.
	Quantity float64 `firestore:"quantity"`

	// Unit is the canonical unit abbreviation for the quantity, or empty.
	Unit string `firestore:"unit"`

	// CrossedOff is whether the item has been checked off in the store.
	CrossedOff bool `firestore:"crossedOff"`

	// AddedAt is when the item was added to the list.
	AddedAt time.Time `firestore:"addedAt"`

	// ClaimedByDishID is the ID of the dish that has reserved this item,
	// or empty when the item is unclaimed.
	ClaimedByDishID string `firestore:"claimedByDishId"`
}