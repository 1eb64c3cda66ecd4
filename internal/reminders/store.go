// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package reminders

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/larderapp/server/internal/larderdb"
)

// Store persists reminder schedules so they survive process restarts.
type Store interface {
	// Save creates or replaces a reminder.
	Save(ctx context.Context, r larderdb.Reminder) error

	// Delete removes a reminder.
	Delete(ctx context.Context, userID, id string) error

	// MarkDelivered records that a reminder fired.
	MarkDelivered(ctx context.Context, userID, id string) error

	// Pending returns all undelivered reminders across users.
	Pending(ctx context.Context) ([]larderdb.Reminder, error)
}

// FirestoreStore keeps reminders in the reminders collection under each user.
type FirestoreStore struct {
	store *firestore.Client
}

// NewFirestoreStore returns a FirestoreStore backed by store.
func NewFirestoreStore(store *firestore.Client) *FirestoreStore {
	return &FirestoreStore{store: store}
}

func (s *FirestoreStore) doc(userID, id string) *firestore.DocumentRef {
	return s.store.Collection("users").Doc(userID).Collection("reminders").Doc(id)
}

func (s *FirestoreStore) Save(ctx context.Context, r larderdb.Reminder) error {
	if r.UserID == "" || r.ID == "" {
		return errors.New("reminders: reminder missing user or ID")
	}
	if _, err := s.doc(r.UserID, r.ID).Set(ctx, r); err != nil {
		return fmt.Errorf("reminders: saving reminder: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.doc(userID, id).Delete(ctx); err != nil {
		return fmt.Errorf("reminders: deleting reminder: %w", err)
	}
	return nil
}

func (s *FirestoreStore) MarkDelivered(ctx context.Context, userID, id string) error {
	if _, err := s.doc(userID, id).Update(ctx, []firestore.Update{{Path: "delivered", Value: true}}); err != nil {
		return fmt.Errorf("reminders: marking reminder delivered: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Pending(ctx context.Context) ([]larderdb.Reminder, error) {
	iter := s.store.CollectionGroup("reminders").Where("delivered", "==", false).Documents(ctx)
	defer iter.Stop()

	var pending []larderdb.Reminder
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reminders: fetching pending reminders: %w", err)
		}
		var r larderdb.Reminder
		if err := doc.DataTo(&r); err != nil {
			return nil, fmt.Errorf("reminders: decoding reminder: %w", err)
		}
		pending = append(pending, r)
	}
	return pending, nil
}