// Package session persists the last-known conversation context id per
// agent endpoint, so consecutive CLI invocations continue the same
// conversation.
//
// The store is a single JSON object on disk mapping a normalized base URL
// to an opaque server-issued context id. It is a best-effort developer
// convenience cache: a missing, unreadable, or corrupt file reads as empty,
// and concurrent writers are resolved last-writer-wins.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the session file created in the user's home directory.
const DefaultFileName = ".a2a_sessions.json"

// Store is a file-backed map of base URL to context id.
type Store struct {
	path string
}

// New creates a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Default creates a Store backed by DefaultFileName in the user's home
// directory, falling back to the working directory when the home directory
// cannot be resolved.
func Default() *Store {
	home, err := os.UserHomeDir()
	if err != nil {
		return New(DefaultFileName)
	}
	return New(filepath.Join(home, DefaultFileName))
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// NormalizeURL strips trailing slashes so equivalent base URLs map to the
// same store entry.
func NormalizeURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

// Load returns the stored context id for baseURL. A missing file, an
// unreadable file, and invalid JSON all read as "no prior context": the
// cache is not correctness-critical, so parse failures degrade to empty
// rather than surfacing as errors.
func (s *Store) Load(baseURL string) (string, bool) {
	id, ok := s.read()[NormalizeURL(baseURL)]
	return id, ok && id != ""
}

// Save records contextID as the current context for baseURL, rewriting the
// whole file. The write goes through a temp file and rename so a crashed
// writer never leaves a truncated store behind. Saving the id already on
// record is a no-op.
func (s *Store) Save(baseURL, contextID string) error {
	key := NormalizeURL(baseURL)
	data := s.read()
	if data[key] == contextID {
		return nil
	}
	data[key] = contextID

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// read parses the store file, treating any failure as an empty map.
func (s *Store) read() map[string]string {
	data := make(map[string]string)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return data
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return make(map[string]string)
	}
	return data
}
