// Package auth provides JWT-based authentication for the summarization API.
// A single admin credential pair is configured through the environment;
// authenticated clients receive a short-lived HS256 token.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidCredentials is returned when the supplied username or
// password does not match the configured credential.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials holds a username/password pair supplied by a client.
type Credentials struct {
	Username string
	Password string
}

// CredentialStore validates client credentials against the configured
// admin account.
type CredentialStore struct {
	username string
	password string
}

// NewCredentialStoreFromEnv builds a CredentialStore from AUTH_USERNAME
// and AUTH_PASSWORD. Both must be set when authentication is enabled.
func NewCredentialStoreFromEnv() (*CredentialStore, error) {
	username := os.Getenv("AUTH_USERNAME")
	password := os.Getenv("AUTH_PASSWORD")
	if username == "" || password == "" {
		return nil, fmt.Errorf("AUTH_USERNAME and AUTH_PASSWORD are required when auth is enabled")
	}
	return &CredentialStore{username: username, password: password}, nil
}

// Validate checks the supplied credentials in constant time. Hashing
// both sides first keeps the comparison length-independent.
func (s *CredentialStore) Validate(creds Credentials) error {
	userHash := sha256.Sum256([]byte(creds.Username))
	wantUserHash := sha256.Sum256([]byte(s.username))
	passHash := sha256.Sum256([]byte(creds.Password))
	wantPassHash := sha256.Sum256([]byte(s.password))

	userOK := subtle.ConstantTimeCompare(userHash[:], wantUserHash[:]) == 1
	passOK := subtle.ConstantTimeCompare(passHash[:], wantPassHash[:]) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
