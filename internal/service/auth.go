package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/msomdec/userauth/internal/domain"
)

// AuthService handles user signup and credential checks.
type AuthService struct {
	users  domain.UserStore
	hasher domain.PasswordHasher

	// mu serialises the load-check-save cycle of Signup for stores
	// without an atomic insert.
	mu sync.Mutex
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserStore, hasher domain.PasswordHasher) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
	}
}

// Signup registers a new user. It fails with a domain.ValidationError when a
// field is empty and with domain.ErrDuplicateEmail when the email is taken.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return domain.Invalid("Name, email, and password are required")
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return err
	}

	user := domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if inserter, ok := s.users.(domain.UserInserter); ok {
		if err := inserter.Insert(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				return err
			}
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.Load(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	if domain.FindByEmail(users, email) >= 0 {
		return domain.ErrDuplicateEmail
	}

	if err := s.users.Save(ctx, append(users, user)); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// Login checks the credentials and returns the stored name of the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" {
		return "", domain.Invalid("Email is required")
	}
	if password == "" {
		return "", domain.Invalid("Password is required")
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load users: %w", err)
	}

	idx := domain.FindByEmail(users, email)
	if idx < 0 {
		return "", domain.ErrUserNotFound
	}

	user := users[idx]
	if err := s.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		return "", err
	}

	return user.Name, nil
}
