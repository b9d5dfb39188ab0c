package tally

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// historyCap bounds the number of retained entries. The oldest entry is
// evicted when a new one would exceed the cap.
const historyCap = 50

// historyKey is the store key for the persisted history blob.
const historyKey = "history"

// HistoryEntry is one completed evaluation.
type HistoryEntry struct {
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Time       time.Time `json:"timestamp"`
}

// History is a bounded, most-recent-first log of completed evaluations,
// persisted through a Store after every mutation.
type History struct {
	mu      sync.Mutex
	store   Store
	entries []HistoryEntry
}

// OpenHistory loads the history persisted in the store. Missing or malformed
// data yields an empty history, never an error.
func OpenHistory(store Store) *History {
	h := &History{store: store}

	data, err := store.Get(historyKey)
	if err != nil {
		return h
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return h
	}
	if len(entries) > historyCap {
		entries = entries[:historyCap]
	}
	h.entries = entries
	return h
}

// Add prepends an entry, evicting the oldest past the cap, and persists the
// log. The returned error is the persistence outcome; callers on the
// calculation path treat persistence as best-effort and ignore it.
func (h *History) Add(entry HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]HistoryEntry{entry}, h.entries...)
	if len(h.entries) > historyCap {
		h.entries = h.entries[:historyCap]
	}
	return h.save()
}

// Entries returns a copy of the log, most recent first.
func (h *History) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]HistoryEntry(nil), h.entries...)
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// Clear drops all entries and persists the empty log.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	return h.save()
}

// save writes the current log to the store. Callers hold the mutex.
func (h *History) save() error {
	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := h.store.Set(historyKey, data); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}
