package session

import (
	"sync"

	"github.com/pkg/errors"
)

// Persisted key names, matching what the upstream dashboard writes.
const (
	KeyToken       = "access_token"
	KeyRole        = "userRole"
	KeyHomeCountry = "userCountry"
)

// KeyValue is the persistent client-side store the session lives in.
type KeyValue interface {
	// Get returns the value for key, and whether the key exists
	Get(key string) (string, bool)

	// Set writes a single key
	Set(key, value string) error

	// Delete removes a key; deleting a missing key is not an error
	Delete(key string) error
}

// Store owns the session. All reads and writes of the three session keys go
// through it; nothing else may touch them.
type Store struct {
	kv   KeyValue
	lock sync.Mutex
}

func NewStore(kv KeyValue) (*Store, error) {
	if kv == nil {
		return nil, errors.New("[NewStore] key-value store is required")
	}
	return &Store{kv: kv}, nil
}

// Get reads the current session. Missing keys yield absent fields, never an
// error.
func (s *Store) Get() Session {
	s.lock.Lock()
	defer s.lock.Unlock()

	var sess Session
	if v, ok := s.kv.Get(KeyToken); ok {
		sess.Token = v
	}
	if v, ok := s.kv.Get(KeyRole); ok {
		sess.Role = RoleType(v)
	}
	if v, ok := s.kv.Get(KeyHomeCountry); ok {
		sess.HomeCountry = v
	}
	return sess
}

// Set writes all three keys. The token is written last so that a crash
// mid-write never leaves a token without a role; Session.Valid treats that
// state as unauthenticated either way.
func (s *Store) Set(token string, role RoleType, homeCountry string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.kv.Set(KeyRole, string(role)); err != nil {
		return errors.Wrap(err, "[Store.Set] role")
	}
	if err := s.kv.Set(KeyHomeCountry, homeCountry); err != nil {
		return errors.Wrap(err, "[Store.Set] home country")
	}
	if err := s.kv.Set(KeyToken, token); err != nil {
		return errors.Wrap(err, "[Store.Set] token")
	}
	return nil
}

// Clear removes all three keys. Used on logout and on an unauthorized
// response from the upstream API. The token goes first, for the same
// ordering reason Set writes it last.
func (s *Store) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.kv.Delete(KeyToken); err != nil {
		return errors.Wrap(err, "[Store.Clear] token")
	}
	if err := s.kv.Delete(KeyRole); err != nil {
		return errors.Wrap(err, "[Store.Clear] role")
	}
	if err := s.kv.Delete(KeyHomeCountry); err != nil {
		return errors.Wrap(err, "[Store.Clear] home country")
	}
	return nil
}
