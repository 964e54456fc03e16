package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/quilltui/quill/internal/social"
)

// Logical keys mirroring the two values the client persists.
const (
	keyToken   = "token"
	keyProfile = "profile"
)

// Store is the durable key/value session store. Values are stored as JSON so
// the token string and the profile object share one access path.
type Store struct {
	db *badger.DB
}

// Open creates or opens the store under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the JSON value stored under key into dest. It reports false
// without error when the key is absent; malformed stored JSON propagates as
// an error for the caller to handle.
func (s *Store) Load(key string, dest any) (bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// Save serializes value to JSON and overwrites key.
func (s *Store) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// SaveLogin persists the bearer token and the profile summary under their
// own keys. The access token never reaches the stored profile value.
func (s *Store) SaveLogin(token string, profile social.Profile) error {
	if err := s.Save(keyToken, token); err != nil {
		return err
	}
	return s.Save(keyProfile, profile)
}

// Token returns the stored bearer token when a session exists.
func (s *Store) Token() (string, bool) {
	var token string
	ok, err := s.Load(keyToken, &token)
	if err != nil || !ok || token == "" {
		return "", false
	}
	return token, true
}

// Profile returns the cached profile summary when a session exists.
func (s *Store) Profile() (social.Profile, bool) {
	var profile social.Profile
	ok, err := s.Load(keyProfile, &profile)
	if err != nil || !ok {
		return social.Profile{}, false
	}
	return profile, true
}

// Clear destroys the session on logout. Idempotent.
func (s *Store) Clear() error {
	if err := s.Remove(keyToken); err != nil {
		return err
	}
	return s.Remove(keyProfile)
}
