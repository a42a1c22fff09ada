// Package store implements the expense store: load the snapshot from the
// backing object, apply one operation, report it to the activity sink, and
// save the snapshot back.
//
// Snapshots are explicit values threaded through every operation; the Store
// holds no state between calls beyond its backend handle and notifier.
// Persistence is whole-snapshot, last-writer-wins: concurrent invocations
// from two processes can silently lose one writer's change.
package store

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"expensetracker/internal/backend"
	"expensetracker/internal/core"
	"expensetracker/internal/notify"
)

type Store struct {
	backend  backend.ObjectStore
	notifier *notify.BestEffort

	// now is swappable for tests
	now func() time.Time
}

func New(b backend.ObjectStore, n *notify.BestEffort) *Store {
	return &Store{
		backend:  b,
		notifier: n,
		now:      time.Now,
	}
}

// Load fetches the current snapshot. A missing backing object yields an
// empty snapshot; an unparsable one is a fatal corruption error.
func (s *Store) Load(ctx context.Context) (core.Snapshot, error) {
	data, found, err := s.backend.Get(ctx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return core.Snapshot{}, nil
	}
	snap, err := core.UnmarshalSnapshot(data)
	if err != nil {
		return core.Snapshot{}, err
	}
	return snap, nil
}

// Add validates and appends a new expense, assigning the next id and the
// current timestamp. Exactly one notification is emitted per attempt.
// The returned snapshot is not yet persisted; call Save.
func (s *Store) Add(ctx context.Context, snap core.Snapshot, description string, amount core.Money, category string) (core.Snapshot, core.Expense, error) {
	description = strings.TrimSpace(description)
	category = strings.TrimSpace(category)
	if category == "" {
		category = core.DefaultCategory
	}

	e := core.Expense{
		ID:          snap.NextID(),
		Description: description,
		Amount:      amount,
		Category:    category,
		CreatedAt:   s.now(),
	}
	if err := e.Validate(); err != nil {
		s.notifier.Notify(ctx, notify.Error, fmt.Sprintf("expense rejected: %v", err))
		return snap, core.Expense{}, err
	}

	next := snap.Clone()
	next.Expenses = append(next.Expenses, e)

	s.notifier.Notify(ctx, notify.Info, fmt.Sprintf(
		"expense added: %s - %s (%s)", e.Description, e.Amount.Display(), e.Category))
	return next, e, nil
}

// Delete removes the expense with the given id. An absent id is not an
// error: the snapshot comes back unchanged with removed=false, and an
// informational notification is emitted instead of a success one.
func (s *Store) Delete(ctx context.Context, snap core.Snapshot, id int64) (core.Snapshot, bool, error) {
	idx := -1
	for i, e := range snap.Expenses {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.notifier.Notify(ctx, notify.Info, fmt.Sprintf("expense not found: id %d", id))
		return snap, false, nil
	}

	removed := snap.Expenses[idx]
	next := core.Snapshot{Expenses: make([]core.Expense, 0, snap.Len()-1)}
	next.Expenses = append(next.Expenses, snap.Expenses[:idx]...)
	next.Expenses = append(next.Expenses, snap.Expenses[idx+1:]...)

	s.notifier.Notify(ctx, notify.Info, fmt.Sprintf(
		"expense deleted: id %d, %s - %s", removed.ID, removed.Description, removed.Amount.Display()))
	return next, true, nil
}

// List returns the records in insertion order, optionally restricted to a
// category (case-sensitive equality). The sequence is lazy, restartable,
// and never mutates the snapshot.
func List(snap core.Snapshot, category string) iter.Seq[core.Expense] {
	return func(yield func(core.Expense) bool) {
		for _, e := range snap.Expenses {
			if category != "" && e.Category != category {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Summarize computes the aggregate view of the snapshot and reports the
// read to the activity sink.
func (s *Store) Summarize(ctx context.Context, snap core.Snapshot) core.Summary {
	sum := core.BuildSummary(snap)
	s.notifier.Notify(ctx, notify.Info, fmt.Sprintf(
		"summary generated: %d expenses, total %s", sum.Count, sum.Total.Display()))
	return sum
}

// Save serializes the snapshot and overwrites the backing object.
func (s *Store) Save(ctx context.Context, snap core.Snapshot) error {
	data, err := core.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}
	if err := s.backend.Put(ctx, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
