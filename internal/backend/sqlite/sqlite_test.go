package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "expenses.db"), "default")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetAbsent(t *testing.T) {
	s := newTestStore(t)
	data, found, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found || data != nil {
		t.Fatalf("expected absent object, got found=%v data=%q", found, data)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := []byte(`[{"id":1}]`)
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, found, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || !bytes.Equal(got, want) {
		t.Fatalf("Get = (%q, %v), want (%q, true)", got, found, want)
	}

	// Overwrite fully replaces prior content.
	want = []byte(`[]`)
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, _, err = s.Get(ctx)
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("overwrite not applied: got %q", got)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.db")
	a, err := New(path, "alice")
	if err != nil {
		t.Fatalf("New alice: %v", err)
	}
	defer a.Close()
	b, err := New(path, "bob")
	if err != nil {
		t.Fatalf("New bob: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	if err := a.Put(ctx, []byte("alice-data")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_, found, err := b.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatalf("bob sees alice's snapshot")
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
