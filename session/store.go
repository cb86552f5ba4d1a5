// Package session persists the selected user identity to durable local
// storage and exposes it to every page-level service.
package session

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/sistemaclass/classcli/core"
	"github.com/sistemaclass/classcli/core/user"
)

const (
	storageKey = "sc_user.json"
	// legacy representation, kept for backward-read compatibility; written
	// only alongside the consolidated key.
	legacyNameKey = "sc_user_name"
	legacyIDKey   = "sc_user_id"
)

type Store struct {
	mu      sync.Mutex
	dir     string
	current *user.User
}

// NewStore opens the store rooted at dir (the sessionDir config default when
// blank), reads any persisted user and runs the one-time legacy migration.
func NewStore(dir string) (*Store, error) {
	if core.CleanString(dir) == "" {
		dir = core.Conf.GetString("sessionDir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "session: creating storage dir")
	}
	s := &Store{dir: dir}
	s.current = s.readStoredUser()
	if s.current == nil {
		s.migrateLegacy()
	}
	return s, nil
}

// readStoredUser trusts the persisted record only when it is a plain object
// with string id and nome; anything else is treated as logged out.
func (s *Store) readStoredUser() *user.User {
	raw, err := ioutil.ReadFile(filepath.Join(s.dir, storageKey))
	if err != nil {
		return nil
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed == nil {
		return nil
	}
	id, okID := parsed["id"].(string)
	nome, okNome := parsed["nome"].(string)
	if !okID || !okNome || id == "" || nome == "" {
		return nil
	}
	return &user.User{ID: id, Nome: nome}
}

// migrateLegacy upgrades the older separate name/id keys into the
// consolidated record when found and no current record exists.
func (s *Store) migrateLegacy() {
	name := s.readLegacy(legacyNameKey)
	id := s.readLegacy(legacyIDKey)
	if name == "" || id == "" {
		return
	}
	u := user.User{ID: id, Nome: name}
	if err := s.writeUser(u); err != nil {
		return
	}
	s.current = &u
}

func (s *Store) readLegacy(key string) string {
	raw, err := ioutil.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return ""
	}
	return core.CleanString(string(raw))
}

func (s *Store) writeUser(u user.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(err, "session: encoding user")
	}
	return ioutil.WriteFile(filepath.Join(s.dir, storageKey), data, 0o600)
}

// Current returns the logged-in user, or nil when logged out.
func (s *Store) Current() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Set persists the full record plus the legacy keys and updates state.
func (s *Store) Set(u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeUser(u); err != nil {
		return err
	}
	if err := ioutil.WriteFile(filepath.Join(s.dir, legacyNameKey), []byte(u.Nome), 0o600); err != nil {
		return errors.Wrap(err, "session: writing legacy name key")
	}
	if err := ioutil.WriteFile(filepath.Join(s.dir, legacyIDKey), []byte(u.ID), 0o600); err != nil {
		return errors.Wrap(err, "session: writing legacy id key")
	}
	s.current = &u
	return nil
}

// Logout clears all persisted keys and resets state.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{storageKey, legacyNameKey, legacyIDKey} {
		if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "session: removing %s", key)
		}
	}
	s.current = nil
	return nil
}
