package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithIDGenerator(sequentialIDs()))

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	a, err := store.Add(ctx, Row{First: "Ada", Skill: "5", Attendance: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != "row-1" {
		t.Errorf("expected id row-1, got %q", a.ID)
	}
	b, _ := store.Add(ctx, Row{First: "Bob", Skill: "3"})
	c, _ := store.Add(ctx, Row{First: "Cy", Skill: "4"})

	updated, err := store.Update(ctx, b.ID, Row{ID: "ignored", First: "Bob", Skill: "6", Defense: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != b.ID || updated.Skill != "6" {
		t.Errorf("unexpected update result %+v", updated)
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := store.List(ctx)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != b.ID || rows[1].ID != c.ID {
		t.Errorf("expected grid order [%s %s], got [%s %s]", b.ID, c.ID, rows[0].ID, rows[1].ID)
	}
	if rows[0].Skill != "6" {
		t.Errorf("expected edited skill 6, got %q", rows[0].Skill)
	}

	// The index must follow the shift caused by the delete.
	if _, err := store.Update(ctx, c.ID, Row{First: "Cy", Skill: "9"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.List(ctx)[1].Skill; got != "9" {
		t.Errorf("expected skill 9 on second row, got %q", got)
	}

	// List hands out copies.
	rows[0].First = "mutated"
	if store.List(ctx)[0].First != "Bob" {
		t.Error("List must not expose internal storage")
	}

	store.Clear(ctx)
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected empty store after clear, got %d", count)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Update(ctx, "missing", Row{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Replace(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithIDGenerator(sequentialIDs()))
	_, _ = store.Add(ctx, Row{First: "old"})

	rows, err := store.Replace(ctx, []Row{{ID: "client", First: "x"}, {First: "y"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "row-2" || rows[1].ID != "row-3" {
		t.Fatalf("expected fresh ids, got %+v", rows)
	}
	if store.Count(ctx) != 2 {
		t.Errorf("expected 2 rows, got %d", store.Count(ctx))
	}
	if err := store.Delete(ctx, "row-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected replaced row to be gone, got %v", err)
	}
}

func TestMemoryStore_MaxRows(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxRows(2))

	for i := 0; i < 2; i++ {
		if _, err := store.Add(ctx, Row{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := store.Add(ctx, Row{}); !errors.Is(err, ErrRosterFull) {
		t.Errorf("expected ErrRosterFull, got %v", err)
	}
	if _, err := store.Replace(ctx, make([]Row, 3)); !errors.Is(err, ErrRosterFull) {
		t.Errorf("expected ErrRosterFull on replace, got %v", err)
	}
	if store.Count(ctx) != 2 {
		t.Errorf("failed replace must leave rows untouched, got %d", store.Count(ctx))
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const writers = 8
	const perWriter = 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				row, err := store.Add(ctx, Row{Skill: "1"})
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if i%2 == 0 {
					if err := store.Delete(ctx, row.ID); err != nil {
						t.Errorf("unexpected error: %v", err)
					}
				}
				_ = store.List(ctx)
			}
		}()
	}
	wg.Wait()

	if got, want := store.Count(ctx), writers*perWriter/2; got != want {
		t.Errorf("expected %d rows, got %d", want, got)
	}
}
