// Package file provides a TOML file implementation of driven.KeyValueStore.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/prodsearch/internal/core/ports/driven"
	"github.com/custodia-labs/prodsearch/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// FileName is the name of the state file inside the store directory.
const FileName = "state.toml"

// Store is a file-based implementation of driven.KeyValueStore using TOML.
// Every write rewrites the whole file.
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]string
}

// NewStore creates a TOML-backed key-value store.
// If dir is empty, defaults to ~/.prodsearch/state.toml.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".prodsearch")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(dir, FileName),
		data:     make(map[string]string),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves the value stored under key.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key], nil
}

// Set stores a value and persists immediately.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Delete removes a key and persists immediately.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// save writes the state to the TOML file (caller must hold lock).
func (s *Store) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.filePath, err)
	}

	// Write with restricted permissions
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.filePath, err)
	}
	return nil
}

// Load reads the state from the TOML file. A missing file yields an empty store.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No state file yet - that's fine, start empty
			s.data = make(map[string]string)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("decoding %s: %w", s.filePath, err)
	}

	s.data = flattenMap(loaded, "")
	return nil
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.filePath
}

// Watch reloads the store whenever the state file is written, replaced or
// removed by another process, and calls onChange (if non-nil) afterwards.
// It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and os.WriteFile may replace the file.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.filePath), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Load(); err != nil {
				logger.Warn("Reloading %s failed: %v", s.filePath, err)
				continue
			}
			logger.Debug("Reloaded %s after %s", s.filePath, event.Op)
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watching %s: %v", s.filePath, err)
		}
	}
}

// flattenMap converts nested tables to dot-notation keys and scalar values
// to strings. E.g., {"a": {"b": 1}} becomes {"a.b": "1"}.
func flattenMap(m map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			for k, nested := range flattenMap(v, fullKey) {
				result[k] = nested
			}
		case string:
			result[fullKey] = v
		default:
			result[fullKey] = fmt.Sprint(v)
		}
	}

	return result
}
