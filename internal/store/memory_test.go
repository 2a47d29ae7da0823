package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
)

// MemoryStore backs most package tests elsewhere; these checks pin the
// semantics it must share with the SQLite implementation.

func TestMemory_SetIfAbsentFirstWriterWins(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	created, err := m.SetIfAbsent(ctx, "c", "k", testDoc{Name: "winner"})
	if err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}
	created, _ = m.SetIfAbsent(ctx, "c", "k", testDoc{Name: "loser"})
	if created {
		t.Fatal("second conditional create must report false")
	}

	raw, _, _ := m.Get(ctx, "c", "k")
	var got testDoc
	json.Unmarshal(raw, &got)
	if got.Name != "winner" {
		t.Errorf("got %q", got.Name)
	}
}

func TestMemory_ConcurrentSetIfAbsent(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	wins := make([]bool, 32)
	for i := range wins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := m.SetIfAbsent(ctx, "c", "k", testDoc{N: i})
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			wins[i] = created
		}()
	}
	wg.Wait()

	var winners int
	for _, w := range wins {
		if w {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("expected exactly one winner, got %d", winners)
	}
}

func TestMemory_QueryCreationOrder(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.Set(ctx, "c", "b", testDoc{UserID: "u", Name: "first"})
	m.Set(ctx, "c", "a", testDoc{UserID: "u", Name: "second"})
	m.Set(ctx, "c", "b", testDoc{UserID: "u", Name: "first-updated"})

	results, err := m.Query(ctx, "c", map[string]any{"userId": "u"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	var first testDoc
	json.Unmarshal(results[0], &first)
	if first.Name != "first-updated" {
		t.Errorf("updates must keep creation order, got %q first", first.Name)
	}
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	m.Set(ctx, "c", "k", testDoc{})
	if err := m.Delete(ctx, "c", "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "c", "k"); ok {
		t.Error("document survived delete")
	}
	if err := m.Delete(ctx, "c", "absent"); err != nil {
		t.Errorf("delete absent: %v", err)
	}
}
