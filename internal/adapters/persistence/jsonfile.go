// Package persistence provides knowledge base persistence adapters.
// Clean Architecture: Adapters implementing ports.KnowledgePersistence.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/0xcro3dile/mohur-go/internal/domain/entities"
)

// JSONFile persists the knowledge base as a flat UTF-8 JSON object mapping
// question to answer, rewritten wholesale on every save. Entry order in the
// file is preserved on load so enumeration order survives restarts.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSON file persistence adapter.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (f *JSONFile) Path() string { return f.path }

// Load reads the backing file. A missing file or malformed content yields
// an empty slice with a logged warning, never an error.
func (f *JSONFile) Load(ctx context.Context) ([]entities.KnowledgeEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] knowledge base file %s not found, starting empty", f.path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	entries, err := decodeOrdered(data)
	if err != nil {
		log.Printf("[WARN] knowledge base file %s is malformed (%v), starting empty", f.path, err)
		return nil, nil
	}
	return entries, nil
}

// Save atomically rewrites the backing file: the new content is written to
// a temp file in the same directory and renamed over the old one, so a
// crash mid-write never leaves a truncated knowledge base behind.
func (f *JSONFile) Save(ctx context.Context, entries []entities.KnowledgeEntry) error {
	data, err := encodeOrdered(entries)
	if err != nil {
		return fmt.Errorf("encoding knowledge base: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// decodeOrdered parses a JSON object while preserving the key order of the
// document, which encoding/json's map decoding would lose.
func decodeOrdered(data []byte) ([]entities.KnowledgeEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var entries []entities.KnowledgeEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		var answer string
		if err := dec.Decode(&answer); err != nil {
			return nil, err
		}
		entries = append(entries, entities.KnowledgeEntry{Question: key, Answer: answer})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// encodeOrdered writes the entries as a JSON object in enumeration order,
// keeping Unicode content verbatim.
func encodeOrdered(entries []entities.KnowledgeEntry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, e := range entries {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		q, err := encodeString(e.Question)
		if err != nil {
			return nil, err
		}
		a, err := encodeString(e.Answer)
		if err != nil {
			return nil, err
		}
		buf.Write(q)
		buf.WriteString(": ")
		buf.Write(a)
	}
	if len(entries) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func encodeString(s string) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}
