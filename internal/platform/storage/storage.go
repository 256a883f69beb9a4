// Package storage keeps uploaded personnel documents on local disk,
// one directory per employee, files keyed by document id so re-uploads
// never collide with stale names.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("stored file not found")

type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Save writes the document payload and returns the stored file name.
func (fs *FileStore) Save(employeeID, documentID, fileName string, src io.Reader) (string, error) {
	dir := filepath.Join(fs.root, sanitize(employeeID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	stored := fmt.Sprintf("%s__%s", sanitize(documentID), sanitize(fileName))
	path := filepath.Join(dir, stored)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return stored, nil
}

// Open returns the stored file for a document id, matching on the id
// prefix so callers need not know the original file name.
func (fs *FileStore) Open(employeeID, documentID string) (*os.File, string, error) {
	dir := filepath.Join(fs.root, sanitize(employeeID))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	prefix := sanitize(documentID) + "__"
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, "", err
		}
		return f, strings.TrimPrefix(entry.Name(), prefix), nil
	}
	return nil, "", ErrNotFound
}

// Remove deletes every stored file for a document id.
func (fs *FileStore) Remove(employeeID, documentID string) error {
	dir := filepath.Join(fs.root, sanitize(employeeID))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	prefix := sanitize(documentID) + "__"
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), prefix) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveAll deletes every stored file for an employee, including the
// directory itself.
func (fs *FileStore) RemoveAll(employeeID string) error {
	return os.RemoveAll(filepath.Join(fs.root, sanitize(employeeID)))
}

// sanitize strips path separators so ids and names cannot escape the
// store root.
func sanitize(v string) string {
	v = filepath.Base(strings.TrimSpace(v))
	if v == "." || v == string(filepath.Separator) {
		return "_"
	}
	return v
}
