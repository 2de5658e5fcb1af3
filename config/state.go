package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ByteMirror/growlens/log"
)

const (
	StateFileName = "state.json"
	// RecraftTokenKey is the fixed key the API token is stored under.
	RecraftTokenKey = "recraft_token"
)

// KVStore is a tiny string key-value store persisted as a JSON object.
type KVStore struct {
	mu   sync.Mutex
	path string
}

// NewKVStore returns a store backed by the file at path. The file is created on
// the first Set.
func NewKVStore(path string) *KVStore {
	return &KVStore{path: path}
}

// DefaultKVStore returns the store at ~/.growlens/state.json.
func DefaultKVStore() (*KVStore, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewKVStore(filepath.Join(dir, StateFileName)), nil
}

// Path returns the backing file.
func (s *KVStore) Path() string {
	return s.path
}

func (s *KVStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return values, nil
}

// Get returns the value for key and whether it was present.
func (s *KVStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key. An empty value removes the key.
func (s *KVStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if value == "" {
		delete(values, key)
	} else {
		values[key] = value
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	// The token is a credential; keep the file private.
	return atomicWriteFile(s.path, data, 0600)
}

// Reset deletes the backing file.
func (s *KVStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(s.path)
}

// TokenStore reads and writes the Recraft API token.
type TokenStore interface {
	GetToken() (string, error)
	SetToken(token string) error
}

// KVTokenStore is the TokenStore backed by a KVStore under RecraftTokenKey.
type KVTokenStore struct {
	kv *KVStore
}

func NewTokenStore(kv *KVStore) *KVTokenStore {
	return &KVTokenStore{kv: kv}
}

// GetToken returns "" when no token has been stored.
func (t *KVTokenStore) GetToken() (string, error) {
	v, _, err := t.kv.Get(RecraftTokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to get recraft token: %w", err)
	}
	return v, nil
}

// SetToken stores token. Setting "" clears it.
func (t *KVTokenStore) SetToken(token string) error {
	if err := t.kv.Set(RecraftTokenKey, token); err != nil {
		return fmt.Errorf("failed to set recraft token: %w", err)
	}
	return nil
}

// ClearToken removes the stored token.
func (t *KVTokenStore) ClearToken() error {
	return t.SetToken("")
}

// ResolveToken returns the stored token, or fallback when none is stored or the
// store cannot be read. Read failures are logged, never returned.
func ResolveToken(store TokenStore, fallback string) string {
	if store == nil {
		return fallback
	}
	token, err := store.GetToken()
	if err != nil {
		log.ErrorLog.Printf("error getting recraft token: %v", err)
		return fallback
	}
	if token == "" {
		return fallback
	}
	return token
}
