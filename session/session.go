// Package session tracks whether the visitor is authenticated and caches
// their profile and bearer token between restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/Jathol7/oz-baby-toys-store/client"
	"github.com/Jathol7/oz-baby-toys-store/models"
	"github.com/Jathol7/oz-baby-toys-store/storage"
)

// State is the session lifecycle: Uninitialized -> Loading -> one of
// {Authenticated, Anonymous}.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

// AuthAPI is the slice of the backend client the session store needs.
// *client.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, creds client.Credentials) (client.AuthPayload, error)
	Register(ctx context.Context, form client.RegisterForm) (client.AuthPayload, error)
	Logout(ctx context.Context) error
}

// Store holds the current session. Construct with New, which rehydrates any
// persisted session synchronously; startup never makes a network call.
type Store struct {
	mu    sync.Mutex
	state State
	user  models.User
	token string
	store storage.Store
	api   AuthAPI
}

// New builds the session store and rehydrates from st. A persisted user that
// no longer parses clears the whole local store and leaves the session
// anonymous.
func New(st storage.Store, api AuthAPI) *Store {
	s := &Store{state: StateLoading, store: st, api: api}

	rawToken, okToken := st.Get(storage.KeyAuthToken)
	rawUser, okUser := st.Get(storage.KeyUser)
	if !okToken || !okUser {
		s.state = StateAnonymous
		return s
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		log.Printf("⚠️ Persisted session is corrupt, clearing: %v", err)
		if err := st.Clear(); err != nil {
			log.Printf("⚠️ Failed to clear local store: %v", err)
		}
		s.state = StateAnonymous
		return s
	}

	s.user = user
	s.token = string(rawToken)
	s.state = StateAuthenticated
	return s
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a user and token are both present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated && s.token != ""
}

// User returns the cached profile and whether one is present.
func (s *Store) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.state == StateAuthenticated
}

// Token returns the bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Login authenticates against the backend. Any failure, including a response
// with no recognizable token, is returned to the caller so the login form can
// render it; local state is untouched.
func (s *Store) Login(ctx context.Context, creds client.Credentials) error {
	payload, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}
	s.establish(payload)
	return nil
}

// Register creates an account. When the backend authenticates the new
// account in the same response the session becomes authenticated; when it
// returns no token the account exists but the caller must log in separately;
// that is not an error.
func (s *Store) Register(ctx context.Context, form client.RegisterForm) error {
	payload, err := s.api.Register(ctx, form)
	if err != nil {
		var parseErr *client.ParseError
		if errors.As(err, &parseErr) {
			return nil
		}
		return err
	}
	s.establish(payload)
	return nil
}

// Logout ends the session. The backend is notified first, while the token is
// still attached to outgoing requests; any remote failure (including a 401
// from an already-expired session) is swallowed. Local state is always
// cleared.
func (s *Store) Logout(ctx context.Context) {
	if s.Token() != "" {
		if err := s.api.Logout(ctx); err != nil {
			// Server already dropped the session, or is unreachable. Either
			// way the local session ends now.
			log.Printf("Remote logout failed (ignored): %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = models.User{}
	s.token = ""
	s.state = StateAnonymous
	if err := s.store.Delete(storage.KeyAuthToken); err != nil {
		log.Printf("⚠️ Failed to clear token: %v", err)
	}
	if err := s.store.Delete(storage.KeyUser); err != nil {
		log.Printf("⚠️ Failed to clear user: %v", err)
	}
}

// establish persists and activates a successful auth payload.
func (s *Store) establish(payload client.AuthPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = payload.User
	s.token = payload.Token
	s.state = StateAuthenticated

	if err := s.store.Set(storage.KeyAuthToken, []byte(payload.Token)); err != nil {
		log.Printf("⚠️ Failed to persist token: %v", err)
	}
	if raw, err := json.Marshal(payload.User); err == nil {
		if err := s.store.Set(storage.KeyUser, raw); err != nil {
			log.Printf("⚠️ Failed to persist user: %v", err)
		}
	}
}
