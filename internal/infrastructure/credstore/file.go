// Package credstore provides durable backends for the single session
// credential. A backend stores exactly one opaque token; nothing else is
// ever persisted client-side.
package credstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/consultation-platform/intake-client/internal/core/domain"
)

// File stores the token in a mode-0600 file, the direct analogue of the
// browser's localStorage slot. Durable across process restarts on the same
// machine and profile.
type File struct {
	path string
}

// NewFile returns a file-backed store at path. When path is empty a default
// location under the user's config directory is used.
func NewFile(path string) *File {
	if path == "" {
		path = defaultPath()
	}
	return &File{path: path}
}

func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "intake-client", "credential")
}

// Set replaces the stored token.
func (f *File) Set(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("credstore: create dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("credstore: write: %w", err)
	}
	return nil
}

// Get returns the stored token, or domain.ErrNoCredential when none is held.
func (f *File) Get(_ context.Context) (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrNoCredential
		}
		return "", fmt.Errorf("credstore: read: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", domain.ErrNoCredential
	}
	return token, nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (f *File) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credstore: clear: %w", err)
	}
	return nil
}
