// Package jsonfile implements domain.UserStore on top of a single JSON file
// holding an array of user records.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/msomdec/userauth/internal/domain"
)

// Store reads and rewrites the whole file on every call.
type Store struct {
	path string
	perm os.FileMode
}

// New returns a Store backed by the file at path. The file is created on
// first Load if it does not exist.
func New(path string) *Store {
	return &Store{path: path, perm: 0o644}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns every stored user in file order. A missing file is
// initialised to an empty array. Unreadable or malformed content is
// reported as domain.ErrStorage and the file is left untouched.
func (s *Store) Load(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := s.write([]byte("[]\n")); err != nil {
				return nil, fmt.Errorf("%w: initialise %s: %w", domain.ErrStorage, s.path, err)
			}
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorage, s.path, err)
	}

	if len(b) == 0 {
		return []domain.User{}, nil
	}

	var users []domain.User
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrStorage, s.path, err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// Save replaces the file contents with users as an indented JSON array.
func (s *Store) Save(ctx context.Context, users []domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}

	b, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode users: %w", domain.ErrStorage, err)
	}
	b = append(b, '\n')

	if err := s.write(b); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorage, s.path, err)
	}
	return nil
}

// write replaces the file with data. The bytes go to a synced temp file
// in the same directory which is then renamed over the target, so readers
// see either the old or the new contents.
func (s *Store) write(data []byte) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(s.perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		// A bind-mounted target cannot be replaced by rename.
		if !errors.Is(err, syscall.EBUSY) && !errors.Is(err, syscall.EXDEV) && !errors.Is(err, syscall.EPERM) {
			return err
		}
		slog.Warn("rename over user file failed, rewriting in place", "path", s.path, "error", err)
		if err = s.overwrite(data); err != nil {
			return err
		}
		os.Remove(tmp.Name())
		return nil
	}

	if d, derr := os.Open(dir); derr == nil {
		d.Sync()
		d.Close()
	}
	return nil
}

// overwrite truncates the target and writes data into it directly.
func (s *Store) overwrite(data []byte) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, s.perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
