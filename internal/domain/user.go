package domain

import "context"

// User is a registered account. Email is the identity key.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// UserStore persists the full, ordered sequence of users.
// Load returns an empty sequence when nothing has been stored yet.
// Save overwrites everything previously stored.
type UserStore interface {
	Load(ctx context.Context) ([]User, error)
	Save(ctx context.Context, users []User) error
}

// UserInserter is implemented by stores that can insert a single user
// atomically, rejecting duplicates with ErrDuplicateEmail.
type UserInserter interface {
	Insert(ctx context.Context, user User) error
}

// FindByEmail returns the index of the user with the given email, or -1.
func FindByEmail(users []User, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}
