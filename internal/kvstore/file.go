package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileStore keeps the whole key space as a JSON object in a single file and
// rewrites it synchronously on every mutation, so state is durable the
// moment a Set or Delete returns. Two processes sharing the same file will
// overwrite each other; last write wins, no merge.
type fileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

func NewFileStore(path string) (Store, error) {

	s := &fileStore{
		path: path,
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run, start empty
	case err != nil:
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	default:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
		}
	}

	return s, nil
}

func (s *fileStore) Get(key string) (string, bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]

	return value, ok, nil
}

func (s *fileStore) Set(key, value string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value

	return s.flush()
}

func (s *fileStore) Delete(key string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return s.flush()
}

func (s *fileStore) Close() error {
	return nil
}

// flush writes via a temp file and rename so a crash mid-write cannot leave
// a truncated state file. Caller holds the lock.
func (s *fileStore) flush() error {

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
