// Package session holds the process-wide authentication state: the bearer
// token and the profile of the user it belongs to. The store is the only
// piece of mutable state shared across workflows.
package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
)

// Store keeps the token and user profile together. They are always written
// and cleared as a pair: a reader that sees a token can rely on the user
// being present too.
type Store struct {
	mu    sync.RWMutex
	token string
	user  *jobmatcher.User
}

func NewStore() *Store {
	return &Store{}
}

// SetAuth commits a verified session. Callers must have validated the token
// (fetched the profile with it) before committing; there is no partial state.
func (s *Store) SetAuth(token string, user *jobmatcher.User) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("session token is empty")
	}
	if user == nil {
		return fmt.Errorf("session user is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user

	return nil
}

// Logout clears the session. Calling it on an already cleared store is a
// no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
}

// Token satisfies jobmatcher.TokenSource, so the HTTP client always attaches
// the current session credential.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Store) User() *jobmatcher.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != ""
}
