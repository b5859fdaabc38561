package admin

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service is the admin auth gate: it validates the configured credentials,
// issues and destroys sessions, and answers verification checks.
type Service struct {
	store    SessionStore
	username string
	password string
}

// NewService builds the gate from the configured admin credentials. The
// password may be a bcrypt hash or a plain secret.
func NewService(store SessionStore, username, password string) *Service {
	return &Service{store: store, username: username, password: password}
}

// Login checks the credentials and, on success, issues a fresh session.
// Any session presented alongside the login is destroyed first so a
// pre-set cookie can never be promoted to an authenticated one.
func (s *Service) Login(ctx context.Context, username, password, priorSessionID string) (Session, error) {
	if !s.credentialsMatch(username, password) {
		return Session{}, ErrInvalidCredentials
	}

	if priorSessionID != "" {
		_ = s.store.Delete(ctx, priorSessionID)
	}

	now := time.Now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Verify resolves a presented session id to the authenticated username.
// A missing, unknown or expired session is a normal negative result, not
// an error.
func (s *Service) Verify(ctx context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", false
	}
	return sess.Username, true
}

// Logout destroys the session record. It only fails when the store cannot
// complete the delete.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	var passOK bool
	if looksLikeBcrypt(s.password) {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}
	return userOK && passOK
}

func looksLikeBcrypt(value string) bool {
	return len(value) > 4 && value[0:2] == "$2"
}
