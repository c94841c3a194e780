// Package settings persists the backend connection credentials: the endpoint
// URL and the access key. Absence of either value means "not configured".
package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys, kept stable across releases: the settings file written by an
// older build must keep loading.
const (
	KeyBackendURL = "backend_url"
	KeyBackendKey = "backend_key"
)

type Credentials struct {
	URL string
	Key string
}

// Configured reports whether both values are present.
func (c Credentials) Configured() bool { return c.URL != "" && c.Key != "" }

// Store is the configuration-provider contract. Implementations must treat a
// missing backing record as empty credentials, not as an error.
type Store interface {
	Get() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// FileStore keeps the credentials in a small JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// DefaultPath resolves the settings file under the user config directory.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "orcafacil", "settings.json")
	}
	return "settings.json"
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

func (s *FileStore) Get() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, err
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Credentials{}, err
	}
	return Credentials{URL: raw[KeyBackendURL], Key: raw[KeyBackendKey]}, nil
}

func (s *FileStore) Save(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(map[string]string{
		KeyBackendURL: c.URL,
		KeyBackendKey: c.Key,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu sync.Mutex
	c  Credentials
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Get() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c, nil
}

func (s *MemStore) Save(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = c
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = Credentials{}
	return nil
}
