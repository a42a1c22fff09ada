package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DefaultCategory is applied when an expense is recorded without one.
const DefaultCategory = "General"

type (
	// Expense is a single recorded expense.
	Expense struct {
		ID          int64     `json:"id"`
		Description string    `json:"description"`
		Amount      Money     `json:"amount"`
		Category    string    `json:"category"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// Snapshot is the complete list of expenses in insertion order.
	// It is the sole unit of persistence: every mutation reads the whole
	// snapshot, changes it in memory, and writes the whole snapshot back.
	Snapshot struct {
		Expenses []Expense
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidID        = errors.New("invalid expense id")
	ErrCorruptSnapshot  = errors.New("corrupt snapshot")
)

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.ID < 1 {
		return ErrInvalidID
	}
	return nil
}

// NextID returns the id for the next insertion: max existing id + 1,
// or 1 for an empty snapshot.
func (s Snapshot) NextID() int64 {
	var max int64
	for _, e := range s.Expenses {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// Len returns the number of records.
func (s Snapshot) Len() int {
	return len(s.Expenses)
}

// Clone returns a snapshot with an independent backing slice.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Expenses: append([]Expense(nil), s.Expenses...)}
}

// MarshalSnapshot serializes a snapshot to its wire form: a JSON array of
// records, amounts as quoted decimal strings, timestamps as RFC 3339.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	records := s.Expenses
	if records == nil {
		records = []Expense{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// UnmarshalSnapshot parses wire bytes back into a snapshot. Any parse
// failure is reported as a corruption error; there is no auto-repair.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var records []Expense
	if err := json.Unmarshal(data, &records); err != nil {
		return Snapshot{}, errors.Join(ErrCorruptSnapshot, err)
	}
	return Snapshot{Expenses: records}, nil
}
