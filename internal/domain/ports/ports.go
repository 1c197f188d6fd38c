// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
)

// KnowledgeReader exposes a read-only snapshot of the knowledge base.
// The resolver and matcher see snapshots only and never mutate the store.
type KnowledgeReader interface {
	// Snapshot returns all entries in enumeration (insertion) order.
	Snapshot() []entities.KnowledgeEntry
}

// KnowledgePersistence loads and saves the full knowledge mapping.
// Save overwrites the previous state wholesale; there is no incremental diff.
type KnowledgePersistence interface {
	// Load reads all entries in enumeration order. A missing backing
	// store yields an empty slice, not an error.
	Load(ctx context.Context) ([]entities.KnowledgeEntry, error)

	// Save replaces the persisted state with the given entries.
	Save(ctx context.Context, entries []entities.KnowledgeEntry) error
}

// GenerationService is the external LLM used when no local match exists.
// It returns an explicit Generation value; provider failures are converted
// to outcomes, never surfaced as errors.
type GenerationService interface {
	// Generate answers the question using the given knowledge entries as
	// a context digest.
	Generate(ctx context.Context, question string, contextEntries []entities.KnowledgeEntry) entities.Generation

	// Name returns the provider identifier for health reporting.
	Name() string

	// Configured reports whether a credential is present.
	Configured() bool
}

// MatchStrategy is a single similarity heuristic over stored entries.
// Strategies are evaluated in a fixed priority order; the first hit wins.
type MatchStrategy interface {
	// Method identifies the heuristic stage.
	Method() entities.MatchMethod

	// Match attempts to find an answer for the normalized query.
	Match(query string, entries []entities.KnowledgeEntry) (entities.MatchResult, bool)
}

// RuleResponder recognizes a small fixed set of intents and produces
// canned responses.
type RuleResponder interface {
	// Respond returns a canned response for the query, if any rule matches.
	Respond(query string) (string, bool)
}

// FileWatcher monitors a single file for changes.
type FileWatcher interface {
	// Watch starts monitoring the file and emits events.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
