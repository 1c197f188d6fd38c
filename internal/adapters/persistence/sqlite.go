package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements ports.KnowledgePersistence on an embedded SQLite
// database. It keeps the same replace-wholesale contract as the JSON file
// adapter, with each save running in one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kb (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL UNIQUE,
		answer TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads all entries ordered by insertion position.
func (s *SQLiteStore) Load(ctx context.Context) ([]entities.KnowledgeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question, answer FROM kb ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying knowledge entries: %w", err)
	}
	defer rows.Close()

	var entries []entities.KnowledgeEntry
	for rows.Next() {
		var e entities.KnowledgeEntry
		if err := rows.Scan(&e.Question, &e.Answer); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return entries, nil
}

// Save replaces the persisted mapping wholesale in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []entities.KnowledgeEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM kb"); err != nil {
		return fmt.Errorf("clearing knowledge entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO kb (question, answer) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Question, e.Answer); err != nil {
			return fmt.Errorf("inserting entry: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
