package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides whether a username/password pair may log in.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// StaticVerifier accepts a single configured account. Only a bcrypt hash of
// the password is kept in memory.
type StaticVerifier struct {
	username string
	hash     []byte
}

// NewStaticVerifier hashes password and returns a verifier for the pair.
func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	return &StaticVerifier{username: username, hash: hash}, nil
}

// Verify reports whether username and password match the configured account.
func (v *StaticVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	return userOK && passErr == nil, nil
}
