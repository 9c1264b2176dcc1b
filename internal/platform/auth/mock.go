package auth

import (
	"context"
)

// MockVerifier provides fake token verification for tests and for local runs
// with authentication disabled.
type MockVerifier struct {
	User  *User
	Error error
}

// Verify returns the configured user or error.
func (m *MockVerifier) Verify(_ context.Context, _ string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// LocalUser returns the caller identity used when authentication is disabled.
func LocalUser() *User {
	return &User{
		UID:           "local-operator",
		Email:         "operator@localhost",
		EmailVerified: true,
	}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
