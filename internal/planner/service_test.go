// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderapp/server/internal/larderdb"
)

func dish(id string, claimedItems, claimedListItems []string) larderdb.Dish {
	return larderdb.Dish{
		ID:                         id,
		Name:                       "dish " + id,
		ClaimedItemIDs:             claimedItems,
		ClaimedShoppingListItemIDs: claimedListItems,
	}
}

func TestSplitDish(t *testing.T) {
	tests := []struct {
		name         string
		dishes       []larderdb.Dish
		dishID       string
		wantFound    bool
		wantReleased []string
		wantKeptIDs  []string
	}{
		{
			name: "first of two",
			dishes: []larderdb.Dish{
				dish("dish-b", []string{"item-b"}, nil),
				dish("dish-a", []string{"item-a"}, nil),
			},
			dishID:       "dish-b",
			wantFound:    true,
			wantReleased: []string{"item-b"},
			wantKeptIDs:  []string{"dish-a"},
		},
		{
			name: "middle of three",
			dishes: []larderdb.Dish{
				dish("dish-a", []string{"item-a"}, nil),
				dish("dish-b", []string{"item-b1", "item-b2"}, nil),
				dish("dish-c", []string{"item-c"}, nil),
			},
			dishID:       "dish-b",
			wantFound:    true,
			wantReleased: []string{"item-b1", "item-b2"},
			wantKeptIDs:  []string{"dish-a", "dish-c"},
		},
		{
			name: "last of two",
			dishes: []larderdb.Dish{
				dish("dish-a", []string{"item-a"}, nil),
				dish("dish-b", []string{"item-b"}, nil),
			},
			dishID:       "dish-b",
			wantFound:    true,
			wantReleased: []string{"item-b"},
			wantKeptIDs:  []string{"dish-a"},
		},
		{
			name:         "only dish",
			dishes:       []larderdb.Dish{dish("dish-a", []string{"item-a"}, nil)},
			dishID:       "dish-a",
			wantFound:    true,
			wantReleased: []string{"item-a"},
			wantKeptIDs:  []string{},
		},
		{
			name:      "unknown id",
			dishes:    []larderdb.Dish{dish("dish-a", []string{"item-a"}, nil)},
			dishID:    "dish-x",
			wantFound: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			removed, kept, found := splitDish(tc.dishes, tc.dishID)
			require.Equal(t, tc.wantFound, found)
			if !tc.wantFound {
				return
			}
			assert.Equal(t, tc.dishID, removed.ID)
			assert.Equal(t, tc.wantReleased, removed.ClaimedItemIDs)
			keptIDs := make([]string, 0, len(kept))
			for _, d := range kept {
				keptIDs = append(keptIDs, d.ID)
			}
			assert.Equal(t, tc.wantKeptIDs, keptIDs)
		})
	}
}

// A released dish's claims must stay its own even as the surviving dishes
// compact past its old position. A surviving dish that keeps its claim sets
// while its items return to the pool would let a later save double-claim them.
func TestSplitDish_KeptDishesRetainOwnClaims(t *testing.T) {
	dishes := []larderdb.Dish{
		dish("dish-b", []string{"item-b"}, []string{"list-b"}),
		dish("dish-a", []string{"item-a"}, []string{"list-a"}),
	}

	removed, kept, found := splitDish(dishes, "dish-b")
	require.True(t, found)
	assert.Equal(t, []string{"item-b"}, removed.ClaimedItemIDs)
	assert.Equal(t, []string{"list-b"}, removed.ClaimedShoppingListItemIDs)

	require.Len(t, kept, 1)
	assert.Equal(t, "dish-a", kept[0].ID)
	assert.Equal(t, []string{"item-a"}, kept[0].ClaimedItemIDs)
	assert.Equal(t, []string{"list-a"}, kept[0].ClaimedShoppingListItemIDs)

	// The input list is untouched.
	assert.Equal(t, "dish-b", dishes[0].ID)
	assert.Equal(t, []string{"item-b"}, dishes[0].ClaimedItemIDs)
}
