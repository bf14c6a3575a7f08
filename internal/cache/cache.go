package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/scout/scout/internal/config"
)

// Store holds fingerprints for one cache type, keyed by document path.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	path    string
	kind    string
	entries map[string]string
	dirty   bool
}

type fileFormat struct {
	Type string `json:"type"`
	// Absolute, slash-separated document path -> content fingerprint
	Entries map[string]string `json:"entries"`
}

// Open loads the store for cacheType from cfg.CachePath. A missing file
// yields an empty store; an unreadable or corrupt one is an error.
func Open(cfg *config.Config, cacheType string) (*Store, error) {
	s := &Store{
		path:    cfg.CachePath(cacheType),
		kind:    cacheType,
		entries: map[string]string{},
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s cache: %w", cacheType, err)
	}
	var f fileFormat
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode %s cache %s: %w", cacheType, s.path, err)
	}
	if f.Entries != nil {
		s.entries = f.Entries
	}
	return s, nil
}

// Path is the file backing the store.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Put records a fingerprint and reports whether it differs from the stored one.
func (s *Store) Put(key, fingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[key]; ok && old == fingerprint {
		return false
	}
	s.entries[key] = fingerprint
	s.dirty = true
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Save writes the store if it changed since the last save. The parent
// directory must already exist; Config.Initialize provisions it.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	b, err := json.MarshalIndent(fileFormat{Type: s.kind, Entries: s.entries}, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("save %s cache: %w", s.kind, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s cache: %w", s.kind, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s cache: %w", s.kind, err)
	}
	s.dirty = false
	return nil
}

// Fingerprint returns a 16-hex-digit xxhash of b.
func Fingerprint(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}
