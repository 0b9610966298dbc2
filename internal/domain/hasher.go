package domain

import "context"

// PasswordHasher produces and verifies salted one-way password hashes.
// Compare returns ErrInvalidPassword when the password does not match.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, hash, password string) error
}
