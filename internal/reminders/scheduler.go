// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package reminders schedules cooking reminders. The schedule is persisted,
// loaded at startup, and armed on in-process timers, so a reminder set
// before a restart still fires after it.
package reminders

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/larderapp/server/internal/larderdb"
)

// Clock abstracts time so tests can drive timers deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancelable pending timer.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Notifier delivers a fired reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, r larderdb.Reminder) error
}

const maxDeliveryAttempts = 3

// Scheduler owns every pending reminder timer. Construct with NewScheduler,
// call Start once to load the persisted schedule, and Close on shutdown to
// cancel outstanding timers.
type Scheduler struct {
	store    Store
	notifier Notifier
	clock    Clock

	baseCtx context.Context

	mu     sync.Mutex
	timers map[string]Timer
	closed bool
}

// NewScheduler returns a stopped Scheduler. A nil clock uses real time.
func NewScheduler(store Store, notifier Notifier, clock Clock) *Scheduler {
	if clock == nil {
		clock = realClock{}
	}
	return &Scheduler{
		store:    store,
		notifier: notifier,
		clock:    clock,
		timers:   map[string]Timer{},
	}
}

// Start loads undelivered reminders and arms a timer for each. Reminders
// already past due fire immediately. ctx outlives Start and is used for
// deliveries triggered by timers.
func (s *Scheduler) Start(ctx context.Context) error {
	s.baseCtx = ctx

	pending, err := s.store.Pending(ctx)
	if err != nil {
		return err
	}
	for _, r := range pending {
		s.arm(r)
	}
	return nil
}

// Schedule persists a reminder and arms its timer.
func (s *Scheduler) Schedule(ctx context.Context, r larderdb.Reminder) error {
	if err := s.store.Save(ctx, r); err != nil {
		return err
	}
	s.arm(r)
	return nil
}

// Cancel stops a reminder's timer and removes it from the store.
func (s *Scheduler) Cancel(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()
	return s.store.Delete(ctx, userID, id)
}

// Close cancels all armed timers. Persisted reminders are untouched and will
// be re-armed by the next Start.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) arm(r larderdb.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if t, ok := s.timers[r.ID]; ok {
		t.Stop()
	}

	delay := r.FireAt.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}
	s.timers[r.ID] = s.clock.AfterFunc(delay, func() {
		s.fire(r)
	})
}

// fire delivers a reminder, retrying transient notifier failures, and marks
// it delivered on success.
func (s *Scheduler) fire(r larderdb.Reminder) {
	s.mu.Lock()
	delete(s.timers, r.ID)
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	ctx := s.baseCtx
	if ctx == nil {
		ctx = context.Background()
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, s.notifier.Notify(ctx, r)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxDeliveryAttempts))
	if err != nil {
		slog.ErrorContext(ctx, "reminders: delivering reminder", "reminder", r.ID, "error", err)
		return
	}

	if err := s.store.MarkDelivered(ctx, r.UserID, r.ID); err != nil {
		slog.ErrorContext(ctx, "reminders: marking reminder delivered", "reminder", r.ID, "error", err)
	}
}

// LogNotifier writes reminders to the process log. It stands in until a push
// delivery channel exists.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, r larderdb.Reminder) error {
	slog.InfoContext(ctx, "reminders: reminder fired",
		"user", r.UserID, "meal", r.MealID, "message", r.Message)
	return nil
}

var _ Notifier = LogNotifier{}