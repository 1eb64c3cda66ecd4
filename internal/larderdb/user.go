// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import "time"

// UserSettings are per-user preferences. Stored as a single settings
// document under the user.
type UserSettings struct {
	// Premium is whether the user has a premium entitlement.
	Premium bool `firestore:"premium"`

	// ReminderLeadTime is how long before a meal a cooking reminder fires.
	ReminderLeadTime time.Duration `firestore:"reminderLeadTimeNs"`

	// ExpiryWarningDays is how many days before expiry an item is surfaced
	// as expiring soon.
	ExpiryWarningDays int `firestore:"expiryWarningDays"`
}

// Reminder is a scheduled cooking reminder, persisted so schedules
// survive process restarts. Stored in the reminders collection for a user.
type Reminder struct {
	// ID is the unique identifier of the reminder.
	ID string `firestore:"id"`

	// UserID is the user the reminder belongs to.
	UserID string `firestore:"userId"`

	// MealID is the planned meal the reminder is for.
	MealID string `firestore:"mealId"`

	// Message is the notification text.
	Message string `firestore:"message"`

	// FireAt is when the reminder should fire.
	FireAt time.Time `firestore:"fireAt"`

	// Delivered is whether the reminder has been delivered.
	Delivered bool `firestore:"delivered"`
}