package tasks

import (
	"errors"
	"testing"
	"time"
)

func addN(t *testing.T, r *Registry, n int) []*int {
	t.Helper()
	counters := make([]*int, n)
	for i := 0; i < n; i++ {
		c := new(int)
		counters[i] = c
		r.Add("jishaku", "tester", time.Now(), func() { *c++ })
	}
	return counters
}

func TestList_InsertionOrderAndUniqueIndices(t *testing.T) {
	r := New()
	addN(t, r, 5)

	recs := r.List()
	if len(recs) != 5 {
		t.Fatalf("list length: got %d want 5", len(recs))
	}

	seen := make(map[int]bool)
	prev := -1
	for i, rec := range recs {
		if seen[rec.Index] {
			t.Fatalf("duplicate index %d at position %d", rec.Index, i)
		}
		seen[rec.Index] = true
		if rec.Index <= prev {
			t.Fatalf("indices not increasing: %d after %d", rec.Index, prev)
		}
		prev = rec.Index
	}
}

func TestCancelIndex_MostRecentSentinel(t *testing.T) {
	r := New()
	counters := addN(t, r, 3)
	last := r.List()[2]

	rec, err := r.CancelIndex(-1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != last {
		t.Fatalf("cancelled record %d, want most recent %d", rec.Index, last.Index)
	}
	if *counters[2] != 1 {
		t.Fatalf("cancel handle signalled %d times, want 1", *counters[2])
	}
	if *counters[0] != 0 || *counters[1] != 0 {
		t.Fatal("older records were signalled")
	}
	if r.Len() != 2 {
		t.Fatalf("registry length after cancel: got %d want 2", r.Len())
	}
}

func TestCancelIndex_UnknownIsNoMutation(t *testing.T) {
	r := New()
	counters := addN(t, r, 3)

	_, err := r.CancelIndex(999)
	if !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("got %v, want ErrUnknownTask", err)
	}
	if r.Len() != 3 {
		t.Fatalf("registry mutated on failed cancel: length %d", r.Len())
	}
	for i, c := range counters {
		if *c != 0 {
			t.Fatalf("record %d signalled on failed cancel", i)
		}
	}
}

func TestCancelIndex_ByIndexAfterRemoval(t *testing.T) {
	r := New()
	addN(t, r, 3)
	recs := r.List()

	// Drop the middle record as if it completed, then cancel the last by index.
	r.Remove(recs[1])

	rec, err := r.CancelIndex(recs[2].Index)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Index != recs[2].Index {
		t.Fatalf("cancelled index %d, want %d", rec.Index, recs[2].Index)
	}
	if r.Len() != 1 {
		t.Fatalf("registry length: got %d want 1", r.Len())
	}
}

func TestCancelAll(t *testing.T) {
	r := New()
	counters := addN(t, r, 4)

	if n := r.CancelAll(); n != 4 {
		t.Fatalf("CancelAll returned %d, want 4", n)
	}
	for i, c := range counters {
		if *c != 1 {
			t.Fatalf("record %d signalled %d times, want 1", i, *c)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("registry not empty after CancelAll: %d", r.Len())
	}
	if n := r.CancelAll(); n != 0 {
		t.Fatalf("second CancelAll returned %d, want 0", n)
	}
}

func TestCancelIndex_EmptyRegistry(t *testing.T) {
	r := New()
	if _, err := r.CancelIndex(-1); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("got %v, want ErrUnknownTask", err)
	}
}
