// Package session holds the process-wide state of the signed-in user: their
// identity and their initialized encryption key. One session exists per
// authenticated user, created on sign-in and torn down on sign-out; it is
// injected into components that encode/decode fields instead of being
// re-derived per screen.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/auth"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/keystore"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
)

// State tracks encryption initialization for the session.
//
// Happy path: Uninitialized -> Initializing -> Ready.
// Failure path: Uninitialized -> Initializing -> Failed (crypto unavailable
// or key cache denied). Ready is required before any write encodes fields;
// reads degrade gracefully in every state.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateReady         State = "ready"
	StateFailed        State = "failed"
)

// Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	state    State
	userID   string
	email    string
	key      []byte
	keystore *keystore.Store
	log      logging.Logger
}

func New(ks *keystore.Store, log logging.Logger) *Session {
	return &Session{state: StateUninitialized, keystore: ks, log: log}
}

// Initialize resolves the user's key via the key store and moves the session
// to Ready. It is idempotent: re-initializing a Ready session for the same
// user is a no-op, and repeating after a failure is safe because key
// resolution itself is idempotent. There is no mid-flight abort; once started
// it runs to completion or failure.
func (s *Session) Initialize(ctx context.Context, claims *auth.Claims) error {
	s.mu.Lock()
	if s.state == StateReady && s.userID == claims.UserID {
		s.mu.Unlock()
		return nil
	}
	// user switch: the previous user's key must not linger in memory
	common.WipeByteArray(s.key)
	s.key = nil
	s.state = StateInitializing
	s.userID = claims.UserID
	s.email = claims.Email
	s.mu.Unlock()

	key, err := s.keystore.LoadOrInit(ctx, claims.UserID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.log.Error(ctx, "encryption initialization failed", "user_id", claims.UserID, "error", err)
		return err
	}
	s.key = key
	s.state = StateReady
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Ready() bool {
	return s.State() == StateReady
}

// Key returns the session key, or common.ErrSessionNotReady when encryption
// has not been initialized. Callers gate transaction writes on this.
func (s *Session) Key() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, common.ErrSessionNotReady
	}
	return s.key, nil
}

func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// ReplaceKey swaps the session key after a successful key import. Valid only
// on a Ready session; the previous key is wiped.
func (s *Session) ReplaceKey(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return common.ErrSessionNotReady
	}
	common.WipeByteArray(s.key)
	s.key = key
	return nil
}

// Close tears the session down on sign-out: the key is wiped from memory and
// the state returns to Uninitialized.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	common.WipeByteArray(s.key)
	s.key = nil
	s.userID = ""
	s.email = ""
	s.state = StateUninitialized
}
