package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaxFileSize caps uploaded files at 10MB.
const MaxFileSize = 10 << 20

// URLPrefix is the public path uploaded files are served under.
const URLPrefix = "/uploads"

var ErrFileTooLarge = errors.New("file exceeds the 10MB limit")

// Store writes uploaded files to a local directory and serves them under
// /uploads. It also removes files a deleted product owned.
type Store struct {
	dir string
	log *zap.Logger
}

func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the directory files are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists one multipart file under a timestamped name and returns its
// public path.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fh.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", err
	}
	return URLPrefix + "/" + name, nil
}

// Remove deletes a stored file by its public path. Paths outside /uploads
// (remote URLs, data URIs) are ignored. Failures are logged, never
// propagated: a missing file must not fail the catalog operation that
// triggered the cleanup.
func (s *Store) Remove(publicPath string) {
	if !strings.HasPrefix(publicPath, URLPrefix+"/") {
		return
	}
	name := filepath.Base(strings.TrimPrefix(publicPath, URLPrefix+"/"))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("could not remove uploaded file", zap.String("path", publicPath), zap.Error(err))
	}
}
