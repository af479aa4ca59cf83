// Package session holds the active bearer credential and the claims
// decoded from it.
//
// The Store is the single writer: Login and Logout change it, everything
// else reads copies through Current. Claims are decoded without verifying
// the signature; the API server is the trust boundary and rejects forged
// tokens on the next call.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token whose claims cannot be read.
var ErrInvalidToken = errors.New("invalid token")

// Session is an activated credential.
type Session struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
}

// DisplayName returns the user's name, "User" when the token carried none.
func (s Session) DisplayName() string {
	if s.UserName == "" {
		return "User"
	}
	return s.UserName
}

// Store persists the session as a JSON file.
type Store struct {
	path string

	mu      sync.RWMutex
	current *Session
}

// NewStore creates a store backed by the file at path. Call Load before
// reading.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted session, if any. A missing file leaves the store
// logged out. A corrupt file also leaves it logged out and is reported.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("invalid session file: %w", err)
	}
	if sess.Token == "" {
		return nil
	}
	s.current = &sess
	return nil
}

// Login decodes the token's claims, persists the session and activates it.
func (s *Store) Login(token string) (Session, error) {
	sess, err := Decode(token)
	if err != nil {
		return Session{}, err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return Session{}, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	s.current = &sess
	return sess, nil
}

// Logout clears the active session and removes the persisted file.
// Logging out without a session is not an error.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Current returns a copy of the active session.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Token returns the active bearer token, or "" when logged out.
func (s *Store) Token() string {
	sess, _ := s.Current()
	return sess.Token
}

// Decode reads the userId and name claims from a JWT without verifying it.
func Decode(token string) (Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := userID(claims["userId"])
	if err != nil {
		return Session{}, err
	}
	name, _ := claims["name"].(string)

	return Session{Token: token, UserID: id, UserName: name}, nil
}

// userID accepts numeric or string-encoded claim values.
func userID(v any) (int64, error) {
	switch id := v.(type) {
	case float64:
		return int64(id), nil
	case json.Number:
		return id.Int64()
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: userId %q is not numeric", ErrInvalidToken, id)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%w: userId claim missing", ErrInvalidToken)
	}
	return 0, fmt.Errorf("%w: unexpected userId claim", ErrInvalidToken)
}
