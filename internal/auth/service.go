package auth

import (
	"context"
	"fmt"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	verifier CredentialVerifier
	sessions *shared.SessionManager
}

// NewService constructs a new Service.
func NewService(verifier CredentialVerifier, sessions *shared.SessionManager) *Service {
	return &Service{verifier: verifier, sessions: sessions}
}

// Login marks sess as authenticated for username when the credentials verify.
func (s *Service) Login(ctx context.Context, sess *shared.Session, username, password string) error {
	ok, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return fmt.Errorf("auth: verify: %w", err)
	}
	if !ok {
		return shared.ErrInvalidCredentials
	}
	if sess == nil {
		return fmt.Errorf("auth: session missing during login")
	}
	sess.SetUser(username)
	return nil
}

// Logout destroys sess, dropping the cart along with the login.
func (s *Service) Logout(sess *shared.Session) {
	s.sessions.Destroy(sess)
}

// RequireAuthenticated returns shared.ErrAuthRequired unless sess is logged in.
func RequireAuthenticated(sess *shared.Session) error {
	if !sess.Authenticated() {
		return shared.ErrAuthRequired
	}
	return nil
}
