// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filestore reads secrets from a directory of plain-text files, for
// running the proxy locally without AWS. The secret name is a path relative to
// the directory (e.g. "books-explorer/GoogleBooks") and the file contents,
// trimmed, are the payload.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store resolves secret names to files under Dir.
type Store struct {
	Dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// GetSecret returns the trimmed contents of Dir/name. Names that escape Dir
// and missing files are errors.
func (s *Store) GetSecret(_ context.Context, name string) (string, error) {
	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("invalid secret name %q", name)
	}

	path := filepath.Join(s.Dir, filepath.FromSlash(name))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("secret %q not found in %s", name, s.Dir)
		}
		return "", fmt.Errorf("reading secret %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
