package service

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/msomdec/userauth/internal/domain"
)

// DefaultBcryptCost matches the cost of hashes written by earlier
// deployments of the service.
const DefaultBcryptCost = 10

// maxPasswordBytes is bcrypt's input limit. Longer passwords are hashed and
// compared on their first maxPasswordBytes bytes only.
const maxPasswordBytes = 72

// BcryptHasher implements domain.PasswordHasher with bcrypt. The number of
// hashes computed at once is bounded so that signups and logins cannot
// saturate every CPU.
type BcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher creates a hasher with the given cost. At most
// GOMAXPROCS hash operations run concurrently.
func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Hash returns a salted bcrypt hash of password.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether password matches hash. Any mismatch, including a
// hash that cannot be parsed, yields domain.ErrInvalidPassword.
func (h *BcryptHasher) Compare(ctx context.Context, hash, password string) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)

	if err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)); err != nil {
		return domain.ErrInvalidPassword
	}
	return nil
}

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
