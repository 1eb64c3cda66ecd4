// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/larderapp/server/internal/larderdb"
)

// ErrItemClaimed is returned when a dish save loses the race for an item:
// another dish claimed it between matching and the transaction commit. The
// claim write is conditional, so the two dishes can never both hold the item.
var ErrItemClaimed = errors.New("planner: item already claimed by another dish")

// ErrDishNotFound is returned when releasing a dish that does not exist.
var ErrDishNotFound = errors.New("planner: dish not found")

// Service is the planner's persistence layer.
type Service struct {
	store *firestore.Client
}

// NewService returns a Service backed by store.
func NewService(store *firestore.Client) *Service {
	return &Service{store: store}
}

func (s *Service) userDoc(userID string) *firestore.DocumentRef {
	return s.store.Collection("users").Doc(userID)
}

// Candidates are the unclaimed pantry items and open shopping-list items a
// new dish may match against.
type Candidates struct {
	Pantry    []larderdb.FoodItem
	ListItems []larderdb.ShoppingListItem
}

// Candidates fetches the user's pantry and shopping list, excluding items
// already claimed by any dish and crossed-off list entries. The two reads
// are independent and run concurrently.
func (s *Service) Candidates(ctx context.Context, userID string) (Candidates, error) {
	var c Candidates
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		docs, err := s.userDoc(userID).Collection("items").
			Where("claimedByDishId", "==", "").Documents(ctx).GetAll()
		if err != nil {
			return fmt.Errorf("planner: fetching pantry items: %w", err)
		}
		c.Pantry = make([]larderdb.FoodItem, len(docs))
		for i, doc := range docs {
			if err := doc.DataTo(&c.Pantry[i]); err != nil {
				return fmt.Errorf("planner: decoding pantry item: %w", err)
			}
		}
		return nil
	})

	g.Go(func() error {
		docs, err := s.userDoc(userID).Collection("shoppingListItems").
			Where("crossedOff", "==", false).
			Where("claimedByDishId", "==", "").Documents(ctx).GetAll()
		if err != nil {
			return fmt.Errorf("planner: fetching shopping-list items: %w", err)
		}
		c.ListItems = make([]larderdb.ShoppingListItem, len(docs))
		for i, doc := range docs {
			if err := doc.DataTo(&c.ListItems[i]); err != nil {
				return fmt.Errorf("planner: decoding shopping-list item: %w", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Candidates{}, err
	}
	return c, nil
}

// SaveDish creates a dish in the (date, mealType) slot, claiming every
// matched pantry and shopping-list item for it. Claiming is all-or-nothing:
// the transaction re-reads each item and fails with ErrItemClaimed if any
// has been claimed since matching, so an item ID can appear in at most one
// dish's claim sets.
func (s *Service) SaveDish(ctx context.Context, userID string, date time.Time, mealType larderdb.MealType, name, sourceURL, imageURL string, matches []Match) (*larderdb.Dish, error) {
	dish := larderdb.Dish{
		ID:                 s.userDoc(userID).Collection("meals").NewDoc().ID,
		Name:               name,
		SourceURL:          sourceURL,
		ImageURL:           imageURL,
		ReservedQuantities: map[string]float64{},
	}
	for _, m := range matches {
		dish.Ingredients = append(dish.Ingredients, m.Ingredient)
		if m.PantryItem != nil {
			dish.ClaimedItemIDs = append(dish.ClaimedItemIDs, m.PantryItem.ID)
			dish.ReservedQuantities[m.NormalizedName] = m.Ingredient.Quantity
		}
		if m.ShoppingListItem != nil {
			dish.ClaimedShoppingListItemIDs = append(dish.ClaimedShoppingListItemIDs, m.ShoppingListItem.ID)
			dish.ReservedQuantities[m.NormalizedName] = m.Ingredient.Quantity
		}
	}

	mealDoc := s.userDoc(userID).Collection("meals").Doc(larderdb.MealID(date, mealType))
	itemsCol := s.userDoc(userID).Collection("items")
	listCol := s.userDoc(userID).Collection("shoppingListItems")

	err := s.store.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		// All reads before any write, per firestore transaction rules.
		mealSnap, err := tx.Get(mealDoc)
		if err != nil && status.Code(err) != codes.NotFound {
			return fmt.Errorf("planner: reading meal: %w", err)
		}

		itemRefs := make([]*firestore.DocumentRef, 0, len(dish.ClaimedItemIDs)+len(dish.ClaimedShoppingListItemIDs))
		for _, id := range dish.ClaimedItemIDs {
			itemRefs = append(itemRefs, itemsCol.Doc(id))
		}
		for _, id := range dish.ClaimedShoppingListItemIDs {
			itemRefs = append(itemRefs, listCol.Doc(id))
		}
		for _, ref := range itemRefs {
			snap, err := tx.Get(ref)
			if err != nil {
				return fmt.Errorf("planner: reading claimed item: %w", err)
			}
			claimed, _ := snap.Data()["claimedByDishId"].(string)
			if claimed != "" {
				return ErrItemClaimed
			}
		}

		meal := larderdb.PlannedMeal{
			ID:       mealDoc.ID,
			Date:     date,
			MealType: mealType,
		}
		if mealSnap.Exists() {
			if err := mealSnap.DataTo(&meal); err != nil {
				return fmt.Errorf("planner: decoding meal: %w", err)
			}
		}
		meal.Dishes = append(meal.Dishes, dish)

		for _, ref := range itemRefs {
			if err := tx.Update(ref, []firestore.Update{{Path: "claimedByDishId", Value: dish.ID}}); err != nil {
				return fmt.Errorf("planner: claiming item: %w", err)
			}
		}
		if err := tx.Set(mealDoc, meal); err != nil {
			return fmt.Errorf("planner: writing meal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// splitDish separates the dish with the given ID from a meal's dish list.
// The kept list is a fresh slice, never a reslice of dishes, so the removed
// dish's claim sets stay intact while the rest compacts.
func splitDish(dishes []larderdb.Dish, dishID string) (removed larderdb.Dish, kept []larderdb.Dish, found bool) {
	kept = make([]larderdb.Dish, 0, len(dishes))
	for _, d := range dishes {
		if d.ID == dishID {
			removed = d
			found = true
			continue
		}
		kept = append(kept, d)
	}
	return removed, kept, found
}

// RemoveDish deletes a dish from its meal and releases every item it had
// claimed back to the unclaimed pool. An emptied meal slot is deleted so the
// (date, mealType) slot can be recreated cleanly.
func (s *Service) RemoveDish(ctx context.Context, userID, mealID, dishID string) error {
	mealDoc := s.userDoc(userID).Collection("meals").Doc(mealID)
	itemsCol := s.userDoc(userID).Collection("items")
	listCol := s.userDoc(userID).Collection("shoppingListItems")

	return s.store.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		mealSnap, err := tx.Get(mealDoc)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrDishNotFound
			}
			return fmt.Errorf("planner: reading meal: %w", err)
		}
		var meal larderdb.PlannedMeal
		if err := mealSnap.DataTo(&meal); err != nil {
			return fmt.Errorf("planner: decoding meal: %w", err)
		}

		removed, kept, found := splitDish(meal.Dishes, dishID)
		if !found {
			return ErrDishNotFound
		}
		meal.Dishes = kept

		release := func(ref *firestore.DocumentRef) error {
			return tx.Update(ref, []firestore.Update{{Path: "claimedByDishId", Value: ""}})
		}
		for _, id := range removed.ClaimedItemIDs {
			if err := release(itemsCol.Doc(id)); err != nil {
				return fmt.Errorf("planner: releasing pantry item: %w", err)
			}
		}
		for _, id := range removed.ClaimedShoppingListItemIDs {
			if err := release(listCol.Doc(id)); err != nil {
				return fmt.Errorf("planner: releasing shopping-list item: %w", err)
			}
		}

		if len(meal.Dishes) == 0 {
			if err := tx.Delete(mealDoc); err != nil {
				return fmt.Errorf("planner: deleting emptied meal: %w", err)
			}
			return nil
		}
		if err := tx.Set(mealDoc, meal); err != nil {
			return fmt.Errorf("planner: writing meal: %w", err)
		}
		return nil
	})
}

// SetDishImage updates a saved dish's image URL, used after its source
// image has been mirrored to the public bucket.
func (s *Service) SetDishImage(ctx context.Context, userID, mealID, dishID, imageURL string) error {
	mealDoc := s.userDoc(userID).Collection("meals").Doc(mealID)

	return s.store.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		mealSnap, err := tx.Get(mealDoc)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrDishNotFound
			}
			return fmt.Errorf("planner: reading meal: %w", err)
		}
		var meal larderdb.PlannedMeal
		if err := mealSnap.DataTo(&meal); err != nil {
			return fmt.Errorf("planner: decoding meal: %w", err)
		}

		found := false
		for i := range meal.Dishes {
			if meal.Dishes[i].ID == dishID {
				meal.Dishes[i].ImageURL = imageURL
				found = true
				break
			}
		}
		if !found {
			return ErrDishNotFound
		}

		if err := tx.Set(mealDoc, meal); err != nil {
			return fmt.Errorf("planner: writing meal: %w", err)
		}
		return nil
	})
}

// Meals returns the user's planned meals within [start, end].
func (s *Service) Meals(ctx context.Context, userID string, start, end time.Time) ([]larderdb.PlannedMeal, error) {
	docs, err := s.userDoc(userID).Collection("meals").
		Where("date", ">=", start).
		Where("date", "<=", end).
		OrderBy("date", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("planner: fetching meals: %w", err)
	}
	meals := make([]larderdb.PlannedMeal, len(docs))
	for i, doc := range docs {
		if err := doc.DataTo(&meals[i]); err != nil {
			return nil, fmt.Errorf("planner: decoding meal: %w", err)
		}
	}
	return meals, nil
}

// AddMissingToShoppingList writes one open shopping-list item per missing
// ingredient so the next store run covers the dish.
func (s *Service) AddMissingToShoppingList(ctx context.Context, userID, listID string, matches []Match) error {
	col := s.userDoc(userID).Collection("shoppingListItems")
	now := time.Now()
	for _, m := range matches {
		if m.Ingredient.Status != larderdb.IngredientStatusMissing {
			continue
		}
		doc := col.NewDoc()
		item := larderdb.ShoppingListItem{
			ID:             doc.ID,
			ListID:         listID,
			Name:           m.Ingredient.Name,
			NormalizedName: m.NormalizedName,
			Quantity:       m.Ingredient.Quantity,
			Unit:           m.Ingredient.Unit,
			AddedAt:        now,
		}
		if _, err := doc.Create(ctx, item); err != nil {
			return fmt.Errorf("planner: adding missing ingredient to list: %w", err)
		}
	}
	return nil
}