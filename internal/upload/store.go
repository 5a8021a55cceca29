package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain"
)

const filePrefix = "upload-"

// Store writes request uploads to uniquely named files in a temp directory
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a store rooted at dir, creating the directory if needed
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create temp dir %s: %w", dir, err)
	}

	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory uploads are written to
func (s *Store) Dir() string {
	return s.dir
}

// File is an upload persisted on disk for the lifetime of one request
type File struct {
	Path     string
	MimeType string
	Size     int64
	logger   *zap.Logger
}

// Save copies src to a new file named upload-<uuid><suffix>.
// On error nothing is left on disk.
func (s *Store) Save(src io.Reader, suffix, mimeType string) (*File, error) {
	path := filepath.Join(s.dir, filePrefix+uuid.NewString()+suffix)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, domain.StorageError("create temp file", err)
	}

	size, copyErr := io.Copy(out, src)
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			s.logger.Warn("Failed to remove partial upload", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, domain.StorageError("write temp file", err)
	}

	s.logger.Debug("Upload persisted",
		zap.String("path", path),
		zap.String("mimeType", mimeType),
		zap.Int64("size", size))

	return &File{Path: path, MimeType: mimeType, Size: size, logger: s.logger}, nil
}

// Remove deletes the file. Removing an already deleted file is not an error.
func (f *File) Remove() error {
	if f == nil {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.StorageError("remove temp file", err)
	}
	return nil
}

// Cleanup removes the file and logs instead of returning the error, for use in defer
func (f *File) Cleanup() {
	if err := f.Remove(); err != nil {
		f.logger.Error("Failed to clean up upload", zap.String("path", f.Path), zap.Error(err))
	}
}
