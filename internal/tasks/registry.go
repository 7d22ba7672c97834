// Package tasks tracks in-flight command invocations so they can be listed
// and cancelled while they run. Records carry a cancellation handle; signalling
// it is fire-and-forget, the registry never waits for the work to stop.
package tasks

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrUnknownTask is returned when no live record matches the requested index.
var ErrUnknownTask = errors.New("unknown task")

// Record is one running invocation. The command/author/time fields exist only
// for display; Index is unique among live records.
type Record struct {
	Index     int
	Command   string
	Author    string
	InvokedAt time.Time

	cancel context.CancelFunc
}

// Registry is an ordered, mutex-guarded collection of live records.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	next    int
	records []*Record
}

func New() *Registry {
	return &Registry{}
}

// Add appends a record for a starting invocation and assigns it the next
// index. Indices are monotonic and never reused within a process.
func (r *Registry) Add(command, author string, invokedAt time.Time, cancel context.CancelFunc) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	rec := &Record{
		Index:     r.next,
		Command:   command,
		Author:    author,
		InvokedAt: invokedAt,
		cancel:    cancel,
	}
	r.records = append(r.records, rec)
	return rec
}

// Remove drops a record after its invocation completed normally. The
// cancellation handle is not signalled. Removing a record that was already
// cancelled away is a no-op.
func (r *Registry) Remove(rec *Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cur := range r.records {
		if cur == rec {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return
		}
	}
}

// Len returns the number of live records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// List returns a snapshot of live records in insertion order.
func (r *Registry) List() []*Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Record, len(r.records))
	copy(out, r.records)
	return out
}

// CancelIndex removes the record with the given index and signals its
// cancellation handle. Index -1 means the most recently added record.
// An unknown index returns ErrUnknownTask without mutating the registry.
// Removal and signalling happen under one lock acquisition, so a record is
// never observable as removed-but-unsignalled or vice versa.
func (r *Registry) CancelIndex(index int) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) == 0 {
		return nil, ErrUnknownTask
	}

	pos := -1
	if index == -1 {
		pos = len(r.records) - 1
	} else {
		for i, rec := range r.records {
			if rec.Index == index {
				pos = i
				break
			}
		}
	}
	if pos < 0 {
		return nil, ErrUnknownTask
	}

	rec := r.records[pos]
	r.records = append(r.records[:pos], r.records[pos+1:]...)
	rec.cancel()
	return rec, nil
}

// CancelAll signals every live record, clears the registry, and returns the
// number of records that were cancelled.
func (r *Registry) CancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.records)
	for _, rec := range r.records {
		rec.cancel()
	}
	r.records = nil
	return count
}
