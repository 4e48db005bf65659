// Package tokenstore persists VTube Studio authentication tokens on disk,
// one file per plugin identity.
package tokenstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds one token file per (plugin name, plugin developer) pair under
// a single state directory. Two plugins running from the same directory never
// share or overwrite each other's tokens.
type Store struct {
	dir string
}

// DefaultDir returns the default state directory, honoring VTSGO_HOME_DIR.
func DefaultDir() (string, error) {
	if dir := os.Getenv("VTSGO_HOME_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".vtsgo"), nil
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create token dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load returns the persisted token for the given plugin identity, or the
// empty string when none exists. A missing token is the first-run path, not
// an error.
func (s *Store) Load(pluginName, pluginDeveloper string) (string, error) {
	raw, err := os.ReadFile(s.path(pluginName, pluginDeveloper))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save durably writes the token for the given plugin identity. The token is
// used to authenticate immediately afterward, so Save must not report success
// before the file is on disk.
func (s *Store) Save(pluginName, pluginDeveloper, token string) error {
	path := s.path(pluginName, pluginDeveloper)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Delete removes the persisted token for the given plugin identity. Removing
// a token that does not exist is not an error.
func (s *Store) Delete(pluginName, pluginDeveloper string) error {
	err := os.Remove(s.path(pluginName, pluginDeveloper))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// path derives the token file name from the plugin identity. Hashing keeps
// the name filesystem-safe regardless of what characters the identity uses.
func (s *Store) path(pluginName, pluginDeveloper string) string {
	sum := sha256.Sum256([]byte(pluginName + "\x00" + pluginDeveloper))
	return filepath.Join(s.dir, "token-"+hex.EncodeToString(sum[:8]))
}
