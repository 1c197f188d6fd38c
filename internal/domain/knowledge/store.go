// Package knowledge owns the question/answer mapping backing the chatbot.
// The in-memory structure and the durability mechanism are separate: the
// store holds normalized entries under a read-write lock and delegates
// persistence to an injected port.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
	"github.com/0xcro3dile/mohur-go/internal/domain/ports"
)

var (
	// ErrInvalidInput signals an empty question or answer on a write path.
	ErrInvalidInput = errors.New("question and answer must be non-empty")

	// ErrNotFound signals deletion of an absent key.
	ErrNotFound = errors.New("knowledge entry not found")
)

// Normalize produces the canonical key form of a question:
// case-folded and whitespace-trimmed.
func Normalize(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// Store is the process-wide knowledge base. Reads (resolution) proceed
// concurrently; each mutation plus its save is one critical section, so a
// reader never observes a partially-applied write.
//
// Enumeration order is insertion order. Matcher tie-breaks and the LLM
// context digest both depend on it being stable.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
	order   []string
	persist ports.KnowledgePersistence
}

// NewStore creates a store and loads it from the persistence port.
// A failed load yields an empty store with a logged warning, not an error.
func NewStore(ctx context.Context, persist ports.KnowledgePersistence) *Store {
	s := &Store{
		entries: make(map[string]string),
		persist: persist,
	}

	loaded, err := persist.Load(ctx)
	if err != nil {
		log.Printf("[WARN] loading knowledge base: %v (starting empty)", err)
		return s
	}
	for _, e := range loaded {
		s.putLocked(Normalize(e.Question), strings.TrimSpace(e.Answer))
	}
	return s
}

// Insert adds or overwrites an entry and saves the full mapping.
// If the save fails the in-memory change is rolled back, keeping memory
// and disk consistent.
func (s *Store) Insert(ctx context.Context, question, answer string) error {
	key := Normalize(question)
	ans := strings.TrimSpace(answer)
	if key == "" || ans == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.entries[key]
	s.putLocked(key, ans)

	if err := s.persist.Save(ctx, s.snapshotLocked()); err != nil {
		if existed {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
			s.order = s.order[:len(s.order)-1]
		}
		return fmt.Errorf("saving knowledge base: %w", err)
	}
	return nil
}

// Delete removes an entry and saves the full mapping, with the same
// rollback rule as Insert.
func (s *Store) Delete(ctx context.Context, question string) error {
	key := Normalize(question)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.entries[key]
	if !existed {
		return ErrNotFound
	}

	idx := -1
	for i, k := range s.order {
		if k == key {
			idx = i
			break
		}
	}
	delete(s.entries, key)
	s.order = append(s.order[:idx], s.order[idx+1:]...)

	if err := s.persist.Save(ctx, s.snapshotLocked()); err != nil {
		s.entries[key] = prev
		s.order = append(s.order, "")
		copy(s.order[idx+1:], s.order[idx:])
		s.order[idx] = key
		return fmt.Errorf("saving knowledge base: %w", err)
	}
	return nil
}

// Reload replaces the in-memory mapping from the persistence port.
// Used when the backing file changes out-of-band. On a failed load the
// current mapping is kept.
func (s *Store) Reload(ctx context.Context) error {
	loaded, err := s.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading knowledge base: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]string, len(loaded))
	s.order = s.order[:0]
	for _, e := range loaded {
		s.putLocked(Normalize(e.Question), strings.TrimSpace(e.Answer))
	}
	return nil
}

// Snapshot returns all entries in enumeration order. The copy is safe to
// read without holding the store's lock.
func (s *Store) Snapshot() []entities.KnowledgeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Count returns the number of stored entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Answer looks up the answer for an already-normalized key.
func (s *Store) Answer(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.entries[key]
	return a, ok
}

// putLocked inserts without saving. Caller holds the write lock (or has
// exclusive ownership during construction).
func (s *Store) putLocked(key, answer string) {
	if key == "" || answer == "" {
		return
	}
	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, key)
	}
	s.entries[key] = answer
}

func (s *Store) snapshotLocked() []entities.KnowledgeEntry {
	out := make([]entities.KnowledgeEntry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, entities.KnowledgeEntry{Question: k, Answer: s.entries[k]})
	}
	return out
}
