// Package blobs stores uploaded file content on local disk under a
// single root directory. The document store only ever sees the resulting
// path and size; writing and removing the bytes happens here, at the
// caller's side of the storage boundary.
package blobs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/filehost/internal/filex"
)

type Store struct {
	root string
}

// NewStore creates the root directory if needed and returns a store
// rooted there.
func NewStore(root string) (*Store, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, fmt.Errorf("blob root: %w", err)
	}
	return &Store{root: abs}, nil
}

func (s *Store) Root() string { return s.root }

// Save streams src into dir (relative to the root) under a unique on-disk
// name derived from a UUID, keeping the original name as a suffix so the
// directory stays human-readable. Returns the stored name, the full path
// and the number of bytes written.
func (s *Store) Save(dir, originalName string, src io.Reader) (name, path string, size int64, err error) {
	target, err := filex.EnsureDir(filepath.Join(s.root, dir))
	if err != nil {
		return "", "", 0, err
	}

	// filepath.Base strips any path components a client smuggles into the
	// original name.
	name = uuid.NewString() + "-" + filepath.Base(originalName)
	path = filepath.Join(target, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("create blob %s: %w", path, err)
	}
	defer dst.Close()

	size, err = io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(path)
		return "", "", 0, fmt.Errorf("write blob %s: %w", path, err)
	}

	return name, path, size, nil
}

// Remove deletes a stored blob. A blob that is already gone is not an
// error; the record pointing at it was the source of truth.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob %s: %w", path, err)
	}
	return nil
}
